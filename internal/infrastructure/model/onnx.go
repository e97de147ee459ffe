package model

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/doeshing/laptopprice/internal/domain"
	"github.com/doeshing/laptopprice/internal/ports"
)

// Config locates the ONNX artifact and the onnxruntime shared library.
type Config struct {
	ModelPath  string
	ORTLibrary string
	InputName  string
	OutputName string
}

// OnnxPredictor runs the regression artifact through onnxruntime. The
// session is created once and reused for every prediction.
type OnnxPredictor struct {
	session *ort.DynamicAdvancedSession
	input   string
	output  string
	mu      sync.Mutex
}

var envOnce struct {
	sync.Mutex
	owned bool
}

// NewOnnxPredictor loads the model. Any failure wraps domain.ErrArtifact and
// means the process cannot serve estimates.
func NewOnnxPredictor(cfg Config) (*OnnxPredictor, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("%w: model path is empty", domain.ErrArtifact)
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("%w: model %s: %v", domain.ErrArtifact, cfg.ModelPath, err)
	}
	if err := initEnvironment(cfg.ORTLibrary); err != nil {
		return nil, fmt.Errorf("%w: onnxruntime: %v", domain.ErrArtifact, err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("%w: inspect model %s: %v", domain.ErrArtifact, cfg.ModelPath, err)
	}
	in, out, err := selectIO(inputs, outputs, cfg.InputName, cfg.OutputName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifact, err)
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath, []string{in}, []string{out}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open session: %v", domain.ErrArtifact, err)
	}
	return &OnnxPredictor{session: session, input: in, output: out}, nil
}

func initEnvironment(library string) error {
	envOnce.Lock()
	defer envOnce.Unlock()
	if ort.IsInitialized() {
		return nil
	}
	if library == "" {
		library = os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")
	}
	if library != "" {
		ort.SetSharedLibraryPath(library)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return err
	}
	envOnce.owned = true
	return nil
}

// selectIO picks the input and output tensors and checks the input width
// against the feature row.
func selectIO(inputs, outputs []ort.InputOutputInfo, inputName, outputName string) (string, string, error) {
	in, err := pickTensor(inputs, inputName, "input")
	if err != nil {
		return "", "", err
	}
	out, err := pickTensor(outputs, outputName, "output")
	if err != nil {
		return "", "", err
	}
	if in.DataType != ort.TensorElementDataTypeFloat {
		return "", "", fmt.Errorf("model input %s has element type %v, want float32", in.Name, in.DataType)
	}
	dims := in.Dimensions
	if len(dims) == 0 {
		return "", "", fmt.Errorf("model input %s has no dimensions", in.Name)
	}
	if width := dims[len(dims)-1]; width > 0 && width != domain.FeatureCount {
		return "", "", fmt.Errorf("model input %s expects %d features, feature row has %d", in.Name, width, domain.FeatureCount)
	}
	return in.Name, out.Name, nil
}

func pickTensor(infos []ort.InputOutputInfo, name, kind string) (ort.InputOutputInfo, error) {
	if name == "" {
		if len(infos) != 1 {
			return ort.InputOutputInfo{}, fmt.Errorf("model has %d %ss; set model.%s_name", len(infos), kind, kind)
		}
		return infos[0], nil
	}
	for _, info := range infos {
		if info.Name == name {
			return info, nil
		}
	}
	return ort.InputOutputInfo{}, fmt.Errorf("model has no %s named %q", kind, name)
}

// Predict implements ports.Predictor.
func (p *OnnxPredictor) Predict(ctx context.Context, row domain.FeatureRow) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return 0, fmt.Errorf("%w: predictor closed", domain.ErrPrediction)
	}

	values := row.Values()
	input, err := ort.NewTensor(ort.NewShape(1, int64(len(values))), values)
	if err != nil {
		return 0, fmt.Errorf("%w: build input tensor: %v", domain.ErrPrediction, err)
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	if err := p.session.Run([]ort.Value{input}, outputs); err != nil {
		return 0, fmt.Errorf("%w: run model: %v", domain.ErrPrediction, err)
	}
	defer outputs[0].Destroy()

	value, err := firstScalar(outputs[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrPrediction, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: model returned %v", domain.ErrPrediction, value)
	}
	return value, nil
}

func firstScalar(v ort.Value) (float64, error) {
	switch t := v.(type) {
	case *ort.Tensor[float32]:
		data := t.GetData()
		if len(data) == 0 {
			return 0, errors.New("model returned an empty tensor")
		}
		return float64(data[0]), nil
	case *ort.Tensor[float64]:
		data := t.GetData()
		if len(data) == 0 {
			return 0, errors.New("model returned an empty tensor")
		}
		return data[0], nil
	default:
		return 0, fmt.Errorf("unsupported model output %T", v)
	}
}

// Close releases the session and, if this package started it, the
// onnxruntime environment.
func (p *OnnxPredictor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	if p.session != nil {
		errs = append(errs, p.session.Destroy())
		p.session = nil
	}
	envOnce.Lock()
	if envOnce.owned && ort.IsInitialized() {
		errs = append(errs, ort.DestroyEnvironment())
		envOnce.owned = false
	}
	envOnce.Unlock()
	return errors.Join(errs...)
}

var _ ports.Predictor = (*OnnxPredictor)(nil)
