package secure

import (
	"bytes"
	"testing"
)

func TestBufferRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "text data",
			data: []byte("my-secret-password"),
		},
		{
			name: "binary data",
			data: []byte{0x00, 0xFF, 0x10, 0x20},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// The protected copy wipes the source, so keep a reference copy.
			expected := append([]byte(nil), tt.data...)

			buf := NewBuffer(tt.data)
			defer buf.Destroy()

			got, err := buf.Bytes()
			if err != nil {
				t.Fatalf("Bytes() error = %v", err)
			}
			if !bytes.Equal(got, expected) {
				t.Errorf("Bytes() = %v, want %v", got, expected)
			}
		})
	}
}

func TestBufferBytesReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	buf := NewBuffer([]byte("immutable"))
	defer buf.Destroy()

	first, err := buf.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	first[0] = 'X'

	second, err := buf.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !bytes.Equal(second, []byte("immutable")) {
		t.Errorf("mutation of a returned copy leaked into the buffer: %q", second)
	}
}

func TestBufferDestroyIsIdempotent(t *testing.T) {
	t.Parallel()

	buf := NewBuffer([]byte("short-lived"))
	buf.Destroy()
	buf.Destroy()

	got, err := buf.Bytes()
	if err != nil {
		t.Fatalf("Bytes() after Destroy error = %v", err)
	}
	if got != nil {
		t.Errorf("Bytes() after Destroy = %v, want nil", got)
	}
}
