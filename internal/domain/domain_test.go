package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_Code(t *testing.T) {
	assert.Equal(t, 101, KindNotFound.Code())
	assert.Equal(t, 102, KindUnauthorized.Code())
	assert.Equal(t, 103, KindAlreadyExists.Code())
	assert.Equal(t, 0, Kind(0).Code())
}

func TestKindFromCode(t *testing.T) {
	for _, k := range []Kind{KindNotFound, KindUnauthorized, KindAlreadyExists} {
		got, ok := KindFromCode(k.Code())
		require.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := KindFromCode(104)
	assert.False(t, ok)
}

func TestError_IsMatchesByKind(t *testing.T) {
	err := Unauthorized(ReasonAlreadyFinalized, "artwork 1")

	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAlreadyExists))

	wrapped := fmt.Errorf("finalize: %w", err)
	assert.True(t, errors.Is(wrapped, ErrUnauthorized))
	assert.Equal(t, 102, CodeOf(wrapped))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "not_found: artwork_not_found (artwork 9)", NotFound(ReasonArtworkNotFound, "artwork 9").Error())
	assert.Equal(t, "already_exists: artist_already_registered", AlreadyExists(ReasonArtistExists, "").Error())
}

func TestCodeOf_NonDomainError(t *testing.T) {
	assert.Equal(t, 0, CodeOf(errors.New("boom")))
	assert.Equal(t, 0, CodeOf(nil))
}

func TestResultOf(t *testing.T) {
	r, err := ResultOf(ArtworkID(1), nil)
	require.NoError(t, err)
	assert.True(t, r.IsOK())
	assert.Equal(t, ArtworkID(1), r.Value)

	r, err = ResultOf(nil, NotFound(ReasonNftNotFound, "nft 2"))
	require.NoError(t, err)
	assert.False(t, r.IsOK())
	assert.Equal(t, 101, r.ErrCode())

	_, err = ResultOf(nil, errors.New("disk"))
	require.Error(t, err)
}

func TestResult_JSON(t *testing.T) {
	data, err := json.Marshal(Err(AlreadyExists(ReasonAlreadyMinted, "")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"err","value":103}`, string(data))

	data, err = json.Marshal(OK(true))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ok","value":true}`, string(data))

	var r Result
	require.NoError(t, json.Unmarshal([]byte(`{"type":"err","value":102}`), &r))
	assert.Equal(t, 102, r.ErrCode())

	require.Error(t, json.Unmarshal([]byte(`{"type":"maybe","value":1}`), &r))
}

func TestNewArtwork(t *testing.T) {
	a := NewArtwork(1, "artist1", "T", "D")

	assert.Equal(t, []ArtistID{"artist1"}, a.Collaborators)
	assert.Equal(t, []uint64{100}, a.Contributions)
	assert.Equal(t, uint64(100), a.TotalContributions)
	assert.False(t, a.IsFinalized)
	assert.False(t, a.HasNft())
	assert.True(t, a.CheckInvariants())
}

func TestArtwork_CloneIsDeep(t *testing.T) {
	a := NewArtwork(1, "artist1", "T", "D")
	id := NftID(4)
	a.NftID = &id

	c := a.Clone()
	c.Collaborators[0] = "mallory"
	c.Contributions[0] = 1
	*c.NftID = 9

	assert.Equal(t, ArtistID("artist1"), a.Collaborators[0])
	assert.Equal(t, uint64(100), a.Contributions[0])
	assert.Equal(t, NftID(4), *a.NftID)
	assert.Nil(t, (*Artwork)(nil).Clone())
}

func TestArtwork_CheckInvariants(t *testing.T) {
	a := NewArtwork(1, "artist1", "T", "D")
	a.Contributions = append(a.Contributions, 5)
	assert.False(t, a.CheckInvariants(), "length mismatch")

	a = NewArtwork(1, "artist1", "T", "D")
	a.TotalContributions = 99
	assert.False(t, a.CheckInvariants(), "sum mismatch")

	a = NewArtwork(1, "artist1", "T", "D")
	a.Collaborators[0] = "other"
	assert.False(t, a.CheckInvariants(), "creator not first")
}

func TestParseIDs(t *testing.T) {
	id, err := ParseArtworkID(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, ArtworkID(12), id)

	_, err = ParseArtworkID("-1")
	require.Error(t, err)

	nid, err := ParseNftID("3")
	require.NoError(t, err)
	assert.Equal(t, "3", nid.String())

	_, err = ParseNftID("x")
	require.Error(t, err)
}

func TestArtistID_IsZero(t *testing.T) {
	assert.True(t, ArtistID("").IsZero())
	assert.True(t, ArtistID("  ").IsZero())
	assert.False(t, ArtistID("a").IsZero())
}

func TestEventName(t *testing.T) {
	assert.Equal(t, "ownership_transfer_requested", EventName(OwnershipTransferRequested{}))
	assert.Equal(t, "nft_minted", EventName(NftMinted{}))
	assert.Equal(t, "", EventName("nope"))
}
