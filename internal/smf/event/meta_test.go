package event

import (
	"testing"

	smferrors "github.com/alxayo/smf-go/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestDecodeMetaSeqNum(t *testing.T) {
	rec, err := decodeMeta(metaSeqNum, []byte{0x01, 0x02}, TimeSystem{})
	require.NoError(t, err)
	require.Equal(t, KindSeqNum, rec.Kind)
	require.EqualValues(t, 0x0102, rec.SeqNum)

	_, err = decodeMeta(metaSeqNum, []byte{0x01}, TimeSystem{})
	require.Equal(t, smferrors.CodeSeqNum, smferrors.CodeOf(err))
}

func TestDecodeMetaTextSubKinds(t *testing.T) {
	for kind := byte(1); kind <= 7; kind++ {
		rec, err := decodeMeta(kind, []byte("hello\x00world"), TimeSystem{})
		require.NoError(t, err)
		require.Equal(t, KindText, rec.Kind)
		require.Equal(t, kind, rec.TextKind)
		require.Equal(t, []byte("hello\x00world"), rec.Data)
	}
}

func TestDecodeMetaChannelPrefixRange(t *testing.T) {
	rec, err := decodeMeta(metaChPrefix, []byte{15}, TimeSystem{})
	require.NoError(t, err)
	require.EqualValues(t, 15, rec.ChannelPrefix)

	_, err = decodeMeta(metaChPrefix, []byte{16}, TimeSystem{})
	require.Equal(t, smferrors.CodeChPrefix, smferrors.CodeOf(err))
}

func TestDecodeMetaEndTrackRejectsNonEmptyPayload(t *testing.T) {
	rec, err := decodeMeta(metaEndTrack, nil, TimeSystem{})
	require.NoError(t, err)
	require.Equal(t, KindEndTrack, rec.Kind)

	_, err = decodeMeta(metaEndTrack, []byte{0x00}, TimeSystem{})
	require.Equal(t, smferrors.CodeBadEOT, smferrors.CodeOf(err))
}

func TestDecodeMetaTempoRejectsZero(t *testing.T) {
	_, err := decodeMeta(metaTempo, []byte{0x00, 0x00, 0x00}, TimeSystem{})
	require.Equal(t, smferrors.CodeSetTempo, smferrors.CodeOf(err))
}

func TestDecodeMetaSMPTEGeneralRangeChecks(t *testing.T) {
	_, err := decodeMeta(metaSMPTE, []byte{24, 0, 0, 0, 0}, TimeSystem{FrameRate: 0})
	require.Equal(t, smferrors.CodeSMPTEOff, smferrors.CodeOf(err))
}

func TestDecodeMetaSMPTEFrameRateCap(t *testing.T) {
	// frame_rate=24: frame must be < 24.
	_, err := decodeMeta(metaSMPTE, []byte{0, 0, 0, 24, 0}, TimeSystem{FrameRate: 24})
	require.Equal(t, smferrors.CodeSMPTEOff, smferrors.CodeOf(err))

	rec, err := decodeMeta(metaSMPTE, []byte{0, 0, 0, 23, 0}, TimeSystem{FrameRate: 24})
	require.NoError(t, err)
	require.Equal(t, KindSMPTE, rec.Kind)
}

func TestDecodeMetaSMPTEDropFrameLaw(t *testing.T) {
	// frame_rate=29 drop-frame: minute%10 != 0 and frame in {0,1} is always rejected.
	_, err := decodeMeta(metaSMPTE, []byte{0, 1, 0, 0, 0}, TimeSystem{FrameRate: 29})
	require.Equal(t, smferrors.CodeSMPTEOff, smferrors.CodeOf(err))

	_, err = decodeMeta(metaSMPTE, []byte{0, 1, 0, 1, 0}, TimeSystem{FrameRate: 29})
	require.Equal(t, smferrors.CodeSMPTEOff, smferrors.CodeOf(err))

	// minute%10 == 0: frame 0/1 are fine.
	rec, err := decodeMeta(metaSMPTE, []byte{0, 10, 0, 0, 0}, TimeSystem{FrameRate: 29})
	require.NoError(t, err)
	require.Equal(t, KindSMPTE, rec.Kind)

	// minute%10 != 0 but frame >= 2: also fine.
	rec, err = decodeMeta(metaSMPTE, []byte{0, 1, 0, 2, 0}, TimeSystem{FrameRate: 29})
	require.NoError(t, err)
	require.Equal(t, KindSMPTE, rec.Kind)
}

func TestDecodeMetaTimeSignatureDenominatorCap(t *testing.T) {
	// denom_exp=11 -> denominator=2048, exceeds the 1024 cap.
	_, err := decodeMeta(metaTimeSig, []byte{4, 11, 24, 8}, TimeSystem{})
	require.Equal(t, smferrors.CodeTimeSig, smferrors.CodeOf(err))

	rec, err := decodeMeta(metaTimeSig, []byte{6, 3, 24, 8}, TimeSystem{})
	require.NoError(t, err)
	require.EqualValues(t, 8, rec.TimeSig.Denominator)
}

func TestDecodeMetaKeySignatureRange(t *testing.T) {
	rec, err := decodeMeta(metaKeySig, []byte{0xF9, 0x01}, TimeSystem{}) // -7, minor
	require.NoError(t, err)
	require.EqualValues(t, -7, rec.KeySig.Key)
	require.True(t, rec.KeySig.IsMinor)

	_, err = decodeMeta(metaKeySig, []byte{0xF8, 0x00}, TimeSystem{}) // -8, out of range
	require.Equal(t, smferrors.CodeKeySig, smferrors.CodeOf(err))

	_, err = decodeMeta(metaKeySig, []byte{0x00, 0x02}, TimeSystem{}) // is_minor must be 0 or 1
	require.Equal(t, smferrors.CodeKeySig, smferrors.CodeOf(err))
}

func TestDecodeMetaCustomFallback(t *testing.T) {
	rec, err := decodeMeta(0x7F, []byte{1, 2, 3}, TimeSystem{})
	require.NoError(t, err)
	require.Equal(t, KindCustomMeta, rec.Kind)
	require.EqualValues(t, 0x7F, rec.CustomMetaType)
	require.Equal(t, []byte{1, 2, 3}, rec.Data)
}
