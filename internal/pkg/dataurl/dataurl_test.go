package dataurl

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode_RoundTrip(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	url := Encode("image/png", raw)

	mimeType, data, err := Decode(url)
	require.NoError(t, err)
	require.Equal(t, "image/png", mimeType)

	decoded, err := base64.StdEncoding.DecodeString(data)
	require.NoError(t, err)
	require.Equal(t, raw, decoded)
}

func TestDecode_AcceptedTypes(t *testing.T) {
	for _, mt := range []string{"image/png", "image/jpeg", "image/webp"} {
		got, _, err := Decode(Encode(mt, []byte("x")))
		require.NoError(t, err, mt)
		require.Equal(t, mt, got)
	}
}

func TestDecode_Rejections(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"no scheme", "image/png;base64,aGk=", ErrInvalid},
		{"no base64 marker", "data:image/png,aGk=", ErrInvalid},
		{"empty media type", "data:;base64,aGk=", ErrInvalid},
		{"empty payload", "data:image/png;base64,", ErrInvalid},
		{"bad base64", "data:image/png;base64,%%%", ErrInvalid},
		{"gif not allowed", "data:image/gif;base64,aGk=", ErrUnsupportedType},
		{"text not allowed", "data:text/plain;base64,aGk=", ErrUnsupportedType},
	}
	for _, tc := range cases {
		_, _, err := Decode(tc.in)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}
