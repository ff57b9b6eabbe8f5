package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		w, h, c int
		wantErr error
	}{
		{"gray buffer", 4, 3, 1, nil},
		{"rgb buffer", 4, 3, 3, nil},
		{"zero width", 0, 3, 1, ErrInvalidBuffer},
		{"zero height", 4, 0, 1, ErrInvalidBuffer},
		{"negative width", -1, 3, 1, ErrInvalidBuffer},
		{"two channels", 4, 3, 2, ErrUnsupportedChannelLayout},
		{"four channels", 4, 3, 4, ErrUnsupportedChannelLayout},
		{"zero channels", 4, 3, 0, ErrUnsupportedChannelLayout},
		{"negative channels", 4, 4, -1, ErrUnsupportedChannelLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.w, tt.h, tt.c)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New: got error %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if got, want := len(b.Pix), tt.w*tt.h*tt.c; got != want {
				t.Errorf("len(Pix): got %d, want %d", got, want)
			}
		})
	}
}

func TestValidate_NilBuffer(t *testing.T) {
	var b *Buffer
	if err := b.Validate(); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("Validate on nil: got %v, want ErrInvalidBuffer", err)
	}
}

func TestValidate_ShortPix(t *testing.T) {
	b := &Buffer{Width: 4, Height: 4, Channels: 1, Pix: make([]uint8, 10)}
	if err := b.Validate(); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("Validate on short pix: got %v, want ErrInvalidBuffer", err)
	}
}

func TestClone_Independent(t *testing.T) {
	b, err := New(3, 3, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b.Set(1, 1, 0, 200)

	c := b.Clone()
	c.Set(1, 1, 0, 50)

	if b.At(1, 1, 0) != 200 {
		t.Errorf("original mutated through clone: got %d, want 200", b.At(1, 1, 0))
	}
	if c.At(1, 1, 0) != 50 {
		t.Errorf("clone value: got %d, want 50", c.At(1, 1, 0))
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})
	img.SetRGBA(1, 1, color.RGBA{200, 100, 50, 255})

	b := FromImage(img)
	if b.Width != 2 || b.Height != 2 || b.Channels != 3 {
		t.Fatalf("geometry: got %dx%dx%d, want 2x2x3", b.Width, b.Height, b.Channels)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if b.At(0, 0, 0) != 10 || b.At(0, 0, 1) != 20 || b.At(0, 0, 2) != 30 {
		t.Errorf("pixel (0,0): got (%d,%d,%d), want (10,20,30)",
			b.At(0, 0, 0), b.At(0, 0, 1), b.At(0, 0, 2))
	}
	if b.At(1, 1, 0) != 200 || b.At(1, 1, 1) != 100 || b.At(1, 1, 2) != 50 {
		t.Errorf("pixel (1,1): got (%d,%d,%d), want (200,100,50)",
			b.At(1, 1, 0), b.At(1, 1, 1), b.At(1, 1, 2))
	}
}

func TestFromImage_NonZeroOrigin(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 8, 7))
	img.SetRGBA(5, 5, color.RGBA{99, 0, 0, 255})

	b := FromImage(img)
	if b.Width != 3 || b.Height != 2 {
		t.Fatalf("geometry: got %dx%d, want 3x2", b.Width, b.Height)
	}
	if b.At(0, 0, 0) != 99 {
		t.Errorf("origin pixel not normalized: got %d, want 99", b.At(0, 0, 0))
	}
}

func TestToImage_Gray(t *testing.T) {
	b, err := New(2, 2, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b.Set(0, 0, 0, 255)
	b.Set(1, 1, 0, 128)

	img := b.ToImage()
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("ToImage: got %T, want *image.Gray", img)
	}
	if gray.GrayAt(0, 0).Y != 255 {
		t.Errorf("pixel (0,0): got %d, want 255", gray.GrayAt(0, 0).Y)
	}
	if gray.GrayAt(1, 1).Y != 128 {
		t.Errorf("pixel (1,1): got %d, want 128", gray.GrayAt(1, 1).Y)
	}
}

func TestToImage_RGB_Roundtrip(t *testing.T) {
	b, err := New(3, 2, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b.Set(2, 1, 0, 12)
	b.Set(2, 1, 1, 34)
	b.Set(2, 1, 2, 56)

	back := FromImage(b.ToImage())
	if back.At(2, 1, 0) != 12 || back.At(2, 1, 1) != 34 || back.At(2, 1, 2) != 56 {
		t.Errorf("roundtrip pixel: got (%d,%d,%d), want (12,34,56)",
			back.At(2, 1, 0), back.At(2, 1, 1), back.At(2, 1, 2))
	}
}
