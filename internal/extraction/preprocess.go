package extraction

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
)

// preprocessImage writes a denoised, binarized copy of the image to a temp PNG.
// Steps: grayscale, Gaussian blur, Otsu threshold, morphological close then open.
func (e *Extractor) preprocessImage(path string) (string, func(), error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", nil, fmt.Errorf("open image: %w", err)
	}

	gray := imaging.Grayscale(src)
	blurred := imaging.Blur(gray, e.cfg.BlurSigma)

	lum := toGray(blurred)
	binary := binarize(lum, otsuThreshold(lum))
	binary = morphOpen(morphClose(binary, e.cfg.MorphKernel), e.cfg.MorphKernel)

	tmp, err := os.CreateTemp("", "ocr-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("create temp image: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()

	if err := imaging.Save(binary, tmpPath); err != nil {
		removeQuietly(tmpPath)
		return "", nil, fmt.Errorf("save preprocessed image: %w", err)
	}
	return tmpPath, func() { removeQuietly(tmpPath) }, nil
}

func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return out
}

// otsuThreshold picks the threshold that maximizes between-class variance.
func otsuThreshold(img *image.Gray) uint8 {
	var hist [256]int
	for _, v := range img.Pix {
		hist[v]++
	}
	total := len(img.Pix)
	if total == 0 {
		return 128
	}

	var sumAll float64
	for i, c := range hist {
		sumAll += float64(i * c)
	}

	var (
		sumBg    float64
		weightBg int
		best     float64
		thresh   int
	)
	for t := 0; t < 256; t++ {
		weightBg += hist[t]
		if weightBg == 0 {
			continue
		}
		weightFg := total - weightBg
		if weightFg == 0 {
			break
		}
		sumBg += float64(t * hist[t])
		meanBg := sumBg / float64(weightBg)
		meanFg := (sumAll - sumBg) / float64(weightFg)
		between := float64(weightBg) * float64(weightFg) * (meanBg - meanFg) * (meanBg - meanFg)
		if between > best {
			best = between
			thresh = t
		}
	}
	return uint8(thresh)
}

// binarize maps pixels above t to white and the rest to black.
func binarize(img *image.Gray, t uint8) *image.Gray {
	out := image.NewGray(img.Rect)
	for i, v := range img.Pix {
		if v > t {
			out.Pix[i] = 255
		}
	}
	return out
}

// morphClose is dilation followed by erosion with a k x k square.
func morphClose(img *image.Gray, k int) *image.Gray {
	return erode(dilate(img, k), k)
}

// morphOpen is erosion followed by dilation with a k x k square.
func morphOpen(img *image.Gray, k int) *image.Gray {
	return dilate(erode(img, k), k)
}

func dilate(img *image.Gray, k int) *image.Gray {
	return morph(img, k, func(cur, v uint8) bool { return v > cur })
}

func erode(img *image.Gray, k int) *image.Gray {
	return morph(img, k, func(cur, v uint8) bool { return v < cur })
}

// morph applies a k x k window, keeping the value preferred by better.
// A kernel of 1 leaves the image unchanged.
func morph(img *image.Gray, k int, better func(cur, v uint8) bool) *image.Gray {
	out := image.NewGray(img.Rect)
	copy(out.Pix, img.Pix)
	if k <= 1 {
		return out
	}

	r := k / 2
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cur := img.Pix[y*img.Stride+x]
			for dy := -r; dy <= r; dy++ {
				yy := y + dy
				if yy < 0 || yy >= h {
					continue
				}
				for dx := -r; dx <= r; dx++ {
					xx := x + dx
					if xx < 0 || xx >= w {
						continue
					}
					if v := img.Pix[yy*img.Stride+xx]; better(cur, v) {
						cur = v
					}
				}
			}
			out.Pix[y*out.Stride+x] = cur
		}
	}
	return out
}
