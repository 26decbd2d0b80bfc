//go:build !android

package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Scene vertex shader: world-space position and normal for lighting and fog.
const sceneVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

out vec3 vWorld;
out vec3 vNormal;

void main() {
    vec4 world = uModel * vec4(aPos, 1.0);
    vWorld = world.xyz;
    vNormal = mat3(transpose(inverse(uModel))) * aNormal;
    gl_Position = uProj * uView * world;
}
` + "\x00"

// Scene fragment shader: ambient plus one directional light, linear fog.
// Faces are lit from either side since surfaces are two-sided.
const sceneFragSrc = `#version 410 core

uniform vec3 uColor;
uniform float uAmbient;
uniform vec3 uSunDir;
uniform float uSunIntensity;
uniform vec3 uCameraPos;
uniform vec3 uFogColor;
uniform float uFogNear;
uniform float uFogFar;

in vec3 vWorld;
in vec3 vNormal;
out vec4 FragColor;

void main() {
    vec3 n = normalize(vNormal);
    if (!gl_FrontFacing) {
        n = -n;
    }
    float diffuse = max(dot(n, uSunDir), 0.0) * uSunIntensity;
    vec3 lit = uColor * (uAmbient + diffuse) / (uAmbient + uSunIntensity);

    float dist = length(vWorld - uCameraPos);
    float fog = clamp((dist - uFogNear) / (uFogFar - uFogNear), 0.0, 1.0);
    FragColor = vec4(mix(lit, uFogColor, fog), 1.0);
}
` + "\x00"

// infoLog reads a GL info log of length n through get.
func infoLog(n int32, get func(int32, *int32, *uint8)) string {
	buf := make([]uint8, n+1)
	get(n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func compileStage(kind uint32, src string) (uint32, error) {
	id := gl.CreateShader(kind)
	strs, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(id, 1, strs, nil)
	gl.CompileShader(id)

	var ok, n int32
	if gl.GetShaderiv(id, gl.COMPILE_STATUS, &ok); ok != gl.FALSE {
		return id, nil
	}
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
	msg := infoLog(n, func(l int32, w *int32, b *uint8) { gl.GetShaderInfoLog(id, l, w, b) })
	gl.DeleteShader(id)
	return 0, fmt.Errorf("compile stage %#x: %s", kind, msg)
}

// buildProgram compiles and links a vertex/fragment pair. Stage objects are
// released once linked.
func buildProgram(vertSrc, fragSrc string) (uint32, error) {
	var stages []uint32
	defer func() {
		for _, id := range stages {
			gl.DeleteShader(id)
		}
	}()
	for _, st := range []struct {
		kind uint32
		src  string
	}{{gl.VERTEX_SHADER, vertSrc}, {gl.FRAGMENT_SHADER, fragSrc}} {
		id, err := compileStage(st.kind, st.src)
		if err != nil {
			return 0, err
		}
		stages = append(stages, id)
	}

	prog := gl.CreateProgram()
	for _, id := range stages {
		gl.AttachShader(prog, id)
	}
	gl.LinkProgram(prog)
	for _, id := range stages {
		gl.DetachShader(prog, id)
	}

	var ok, n int32
	if gl.GetProgramiv(prog, gl.LINK_STATUS, &ok); ok != gl.FALSE {
		return prog, nil
	}
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
	msg := infoLog(n, func(l int32, w *int32, b *uint8) { gl.GetProgramInfoLog(prog, l, w, b) })
	gl.DeleteProgram(prog)
	return 0, fmt.Errorf("link program: %s", msg)
}
