package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()

	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader type %d: %v", shaderType, log)
	}

	return shader, nil
}

// phongUniforms caches the uniform locations of the phong program.
type phongUniforms struct {
	projection      int32
	view            int32
	model           int32
	viewPosition    int32
	diffuseColour   int32
	specularColour  int32
	shininess       int32
	flatShading     int32
	lightCount      int32
	lightDirections int32
	lightRadiance   int32
	ambient         int32
}

func uniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func lookupPhongUniforms(program uint32) phongUniforms {
	return phongUniforms{
		projection:      uniformLocation(program, "projection"),
		view:            uniformLocation(program, "view"),
		model:           uniformLocation(program, "model"),
		viewPosition:    uniformLocation(program, "view_position"),
		diffuseColour:   uniformLocation(program, "diffuse_colour"),
		specularColour:  uniformLocation(program, "specular_colour"),
		shininess:       uniformLocation(program, "shininess"),
		flatShading:     uniformLocation(program, "flat_shading"),
		lightCount:      uniformLocation(program, "light_count"),
		lightDirections: uniformLocation(program, "light_directions"),
		lightRadiance:   uniformLocation(program, "light_radiance"),
		ambient:         uniformLocation(program, "ambient"),
	}
}
