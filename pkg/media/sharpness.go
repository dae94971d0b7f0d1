package media

import (
	"errors"
	"image"
)

var ErrInvalidImage = errors.New("media: image is nil, empty or too small to score")

// LaplacianVariance scores how much high-frequency detail an image carries.
// It convolves the 3x3 Laplacian kernel over interior pixels and returns the
// variance of the response. Blurry frames score near zero, sharp frames score
// high. Deterministic for a given input.
func LaplacianVariance(img *image.Gray) (float64, error) {
	if img == nil {
		return 0, ErrInvalidImage
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// The kernel needs a full neighborhood, so anything under 3x3 has no
	// interior pixels to score.
	if width < 3 || height < 3 {
		return 0, ErrInvalidImage
	}

	responses := make([]float64, 0, (width-2)*(height-2))
	var sum float64

	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			center := float64(img.GrayAt(x, y).Y)
			up := float64(img.GrayAt(x, y-1).Y)
			down := float64(img.GrayAt(x, y+1).Y)
			left := float64(img.GrayAt(x-1, y).Y)
			right := float64(img.GrayAt(x+1, y).Y)

			response := up + down + left + right - 4*center
			responses = append(responses, response)
			sum += response
		}
	}

	mean := sum / float64(len(responses))
	var variance float64
	for _, r := range responses {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(responses))

	return variance, nil
}

// Grayscale converts any decoded image to 8-bit grayscale for scoring.
func Grayscale(src image.Image) *image.Gray {
	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, src.At(x, y))
		}
	}
	return gray
}
