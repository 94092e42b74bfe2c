package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initErr    error
	once       sync.Once
)

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
		if initErr != nil {
			initErr = fmt.Errorf("failed to start shader translator: %w", initErr)
		}
	})
	return translator, initErr
}

// Stage is a translated shader stage. Mapped holds the names the translator gave
// to the source's uniforms and attributes.
type Stage struct {
	Code   string
	Mapped map[string]string
}

// Translate converts a WebGL2 stage ("vertex" or "fragment") to GLSL 4.10.
func Translate(source, stage string) (*Stage, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, err
	}
	out, err := t.TranslateShader(source, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	st := &Stage{Code: out.Code, Mapped: make(map[string]string, len(out.Variables))}
	for name, v := range out.Variables {
		st.Mapped[name] = v.MappedName
	}
	return st, nil
}
