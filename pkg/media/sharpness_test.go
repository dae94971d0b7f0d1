package media

import (
	"image"
	"image/color"
	"testing"
)

func flatImage(w, h int, level uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: level})
		}
	}
	return img
}

func checkerboard(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			} else {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return img
}

func TestLaplacianVarianceFlatIsZero(t *testing.T) {
	score, err := LaplacianVariance(flatImage(32, 32, 128))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0 {
		t.Fatalf("flat image should score 0, got %f", score)
	}
}

func TestLaplacianVarianceTexturedScoresHigher(t *testing.T) {
	flat, err := LaplacianVariance(flatImage(32, 32, 128))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	textured, err := LaplacianVariance(checkerboard(32, 32))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if textured <= flat {
		t.Fatalf("textured (%f) should outscore flat (%f)", textured, flat)
	}
}

func TestLaplacianVarianceDeterministic(t *testing.T) {
	img := checkerboard(16, 16)
	first, _ := LaplacianVariance(img)
	second, _ := LaplacianVariance(img)
	if first != second {
		t.Fatalf("scores differ: %f vs %f", first, second)
	}
}

func TestLaplacianVarianceDegenerateInput(t *testing.T) {
	cases := []struct {
		name string
		img  *image.Gray
	}{
		{"nil", nil},
		{"empty", image.NewGray(image.Rect(0, 0, 0, 0))},
		{"too narrow", image.NewGray(image.Rect(0, 0, 2, 10))},
		{"too short", image.NewGray(image.Rect(0, 0, 10, 2))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LaplacianVariance(tc.img); err != ErrInvalidImage {
				t.Fatalf("expected ErrInvalidImage, got %v", err)
			}
		})
	}
}

func TestLaplacianVarianceNonNegative(t *testing.T) {
	imgs := []*image.Gray{
		flatImage(8, 8, 0),
		flatImage(8, 8, 255),
		checkerboard(8, 8),
	}
	for _, img := range imgs {
		score, err := LaplacianVariance(img)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if score < 0 {
			t.Fatalf("variance must be non-negative, got %f", score)
		}
	}
}
