package model

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/mat"

	"mindemotion-core/internal/domain/entity"
)

const (
	mriWeightsFile = "mri_weights.json"
	mriInputSize   = 224
)

var (
	mriClassNames = [2]string{"no", "yes"} // 0=no (Normal), 1=yes (Tumor)
	mriLabelMap   = map[string]string{"no": "Normal", "yes": "Tumor"}
)

type mriModelFile struct {
	Grid int       `json:"grid"`
	W    []float64 `json:"w"` // (grid*grid*3)
	B    float64   `json:"b"`
}

// MriModel screens a brain scan for tumor presence. The image is resized
// to 224x224, reduced to per-cell channel means over a fixed grid, and
// scored with a logistic head producing prob_yes.
type MriModel struct {
	grid int
	w    *mat.VecDense
	b    float64
}

func NewMriModel(grid int, w []float64, b float64) *MriModel {
	return &MriModel{grid: grid, w: mat.NewVecDense(len(w), w), b: b}
}

func LoadMriModel(dir string) (*MriModel, error) {
	raw, err := os.ReadFile(filepath.Join(dir, mriWeightsFile))
	if err != nil {
		return nil, err
	}
	var f mriModelFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if f.Grid <= 0 || len(f.W) != f.Grid*f.Grid*3 {
		return nil, fmt.Errorf("mri model: W dimensions mismatch")
	}
	if mriInputSize%f.Grid != 0 {
		return nil, fmt.Errorf("mri model: grid must evenly divide %d", mriInputSize)
	}
	return NewMriModel(f.Grid, f.W, f.B), nil
}

// Classify decodes and scores one scan. A decode failure is a
// collaborator fault, not a validation error; the dispatcher turns it
// into a generic 500.
func (m *MriModel) Classify(r io.Reader) (*entity.MriResult, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode scan: %w", err)
	}

	resized := image.NewRGBA(image.Rect(0, 0, mriInputSize, mriInputSize))
	draw.ApproxBiLinear.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Src, nil)

	feats := cellFeatures(resized, m.grid)
	z := mat.Dot(m.w, mat.NewVecDense(len(feats), feats)) + m.b
	prob := 1 / (1 + math.Exp(-z))

	// Threshold is inclusive: 0.5 counts as positive.
	raw := mriClassNames[0]
	if prob >= 0.5 {
		raw = mriClassNames[1]
	}

	return &entity.MriResult{
		RawLabel: raw,
		Label:    mriLabelMap[raw],
		ProbYes:  prob,
	}, nil
}

// cellFeatures averages each RGB channel over a grid x grid partition of
// the resized image, normalized to [0,1].
func cellFeatures(img *image.RGBA, grid int) []float64 {
	cell := mriInputSize / grid
	feats := make([]float64, 0, grid*grid*3)

	for gy := 0; gy < grid; gy++ {
		for gx := 0; gx < grid; gx++ {
			var sumR, sumG, sumB float64
			for y := gy * cell; y < (gy+1)*cell; y++ {
				for x := gx * cell; x < (gx+1)*cell; x++ {
					c := img.RGBAAt(x, y)
					sumR += float64(c.R)
					sumG += float64(c.G)
					sumB += float64(c.B)
				}
			}
			n := float64(cell * cell * 255)
			feats = append(feats, sumR/n, sumG/n, sumB/n)
		}
	}
	return feats
}
