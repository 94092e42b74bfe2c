package shader

import (
	"strings"
	"testing"

	"github.com/massymassy/gosea/params"
	"github.com/stretchr/testify/assert"
)

func TestPreambleDeclaresParameterUniforms(t *testing.T) {
	pre := GeneratePreamble(params.OceanDefinitions())

	assert.True(t, strings.HasPrefix(pre, "#version 300 es\n"))
	for _, decl := range []string{
		"uniform mat4 uProjection;",
		"uniform float uTime;",
		"uniform vec2 uBigWaveFrequency;",
		"uniform vec3 uDepthColor;",
		"uniform vec3 uSurfaceColor;",
		"uniform float uColorMultiplier;",
	} {
		assert.Contains(t, pre, decl)
	}
}

func TestPreambleSkipsHostOnlyParameters(t *testing.T) {
	pre := GeneratePreamble([]params.Definition{{Name: "hostOnly", Kind: params.KindScalar}})
	assert.NotContains(t, pre, "hostOnly")
}

func TestOceanSources(t *testing.T) {
	defs := params.OceanDefinitions()

	vs := GetOceanVertexShader(defs)
	assert.Contains(t, vs, "float cnoise(vec3 P)")
	assert.Contains(t, vs, "layout (location = 0) in vec3 position;")
	assert.Equal(t, 1, strings.Count(vs, "#version"))

	fs := GetOceanFragmentShader(defs)
	assert.Contains(t, fs, "mix(uDepthColor, uSurfaceColor, mixStrength)")
	assert.NotContains(t, fs, "cnoise")
}

func TestBlitSources(t *testing.T) {
	assert.True(t, strings.HasPrefix(GetBlitFragmentShader(), "#version 410 core"))
	assert.Contains(t, GetBlitFragmentShader(), "texture(u_texture, frag_uv)")
	assert.True(t, strings.HasPrefix(GenerateVertexShader(), "#version 410 core"))
}
