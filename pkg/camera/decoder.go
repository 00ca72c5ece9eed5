package camera

import (
	"Product-Scanner/pkg/scan"
	"errors"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
	"golang.org/x/image/draw"
)

var errNoCode = errors.New("no code in frame")

// Decoder reads QR codes first, then Code 128 and EAN/UPC barcodes.
type Decoder struct {
	hints   map[gozxing.DecodeHintType]interface{}
	readers []gozxing.Reader
}

func NewDecoder() *Decoder {
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	return &Decoder{
		hints: hints,
		readers: []gozxing.Reader{
			qrcode.NewQRCodeReader(),
			oned.NewCode128Reader(),
			oned.NewMultiFormatUPCEANReader(hints),
		},
	}
}

// Decode looks for a code inside the detection window of img.
func (d *Decoder) Decode(img image.Image, cfg scan.CaptureConfig) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(DetectionWindow(img, cfg.DetectionBox, cfg.AspectRatio))
	if err != nil {
		return "", err
	}

	for _, r := range d.readers {
		result, err := r.Decode(bmp, d.hints)
		if err == nil {
			return result.GetText(), nil
		}
	}
	return "", errNoCode
}

// DetectionWindow crops the centered box of width box and height
// box/aspect, clamped to the frame.
func DetectionWindow(img image.Image, box int, aspect float64) image.Image {
	b := img.Bounds()
	if box <= 0 {
		return img
	}
	if aspect <= 0 {
		aspect = 1
	}

	w := min(box, b.Dx())
	h := min(int(float64(box)/aspect), b.Dy())
	x0 := b.Min.X + (b.Dx()-w)/2
	y0 := b.Min.Y + (b.Dy()-h)/2
	rect := image.Rect(x0, y0, x0+w, y0+h)

	if sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(rect)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
	return dst
}
