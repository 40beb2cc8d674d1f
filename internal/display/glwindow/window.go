// Package glwindow is a desktop display surface: a GLFW window whose
// framebuffer-size callback drives resize notifications, presenting
// composited frames as a full-window texture.
//
// All methods except PixelWidth, PixelHeight, OnResize and Present must be
// called from the thread that called Open, normally the locked main thread.
package glwindow

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/rook-computer/pixelscale/internal/buttons"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

type Window struct {
	surface

	Logger logger

	win     *glfw.Window
	program uint32
	vao     uint32
	vbo     uint32
	texture uint32
	texSize image.Point
	shown   *image.RGBA

	input *Input
}

// Open creates the window and its GL resources.
func Open(title string, width, height int, l logger) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	w := &Window{Logger: l, win: win, input: newInput()}
	if err := w.initGL(); err != nil {
		w.Close()
		return nil, err
	}

	// Framebuffer pixels, not screen coordinates: they differ on HiDPI.
	w.setSize(win.GetFramebufferSize())
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, fw, fh int) {
		w.infof("framebuffer resized to %dx%d", fw, fh)
		w.setSize(fw, fh)
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		if ev, ok := keymap[key]; ok {
			w.input.send(ev)
		}
	})
	win.SetCloseCallback(func(*glfw.Window) { w.input.send(buttons.Exit) })

	w.infof("window open, framebuffer %dx%d (GL %s)", w.PixelWidth(), w.PixelHeight(), gl.GoStr(gl.GetString(gl.VERSION)))
	return w, nil
}

var keymap = map[glfw.Key]buttons.Event{
	glfw.KeyEscape: buttons.Exit,
	glfw.KeyF4:     buttons.Exit,
	glfw.KeyF5:     buttons.Reset,
}

// Input returns the window's keyboard as a buttons driver.
func (w *Window) Input() *Input { return w.input }

// Run pumps window events and shows presented frames until ctx is done.
func (w *Window) Run(ctx context.Context) {
	for ctx.Err() == nil && !w.win.ShouldClose() {
		glfw.WaitEventsTimeout((time.Second / 120).Seconds())
		if frame := w.take(w.shown); frame != nil {
			w.shown = frame
			w.draw(frame)
			w.win.SwapBuffers()
		}
	}
}

func (w *Window) Close() {
	if w.win == nil {
		return
	}
	gl.DeleteTextures(1, &w.texture)
	gl.DeleteBuffers(1, &w.vbo)
	gl.DeleteVertexArrays(1, &w.vao)
	gl.DeleteProgram(w.program)
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
}

func (w *Window) draw(frame *image.RGBA) {
	fw, fh := w.win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fw), int32(fh))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	size := frame.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return
	}

	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(frame.Stride/4))
	if size != w.texSize {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
		w.texSize = size
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(size.X), int32(size.Y), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
	}

	gl.UseProgram(w.program)
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
	gl.BindVertexArray(0)
}

func (w *Window) initGL() error {
	program, err := newProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return err
	}
	w.program = program
	gl.UseProgram(program)
	gl.Uniform1i(gl.GetUniformLocation(program, gl.Str("frame\x00")), 0)

	// Positions and texture coordinates; v is flipped because image rows
	// run top to bottom.
	vertices := []float32{
		-1.0, -1.0, 0.0, 1.0,
		1.0, -1.0, 1.0, 1.0,
		1.0, 1.0, 1.0, 0.0,
		-1.0, 1.0, 0.0, 0.0,
	}
	gl.GenVertexArrays(1, &w.vao)
	gl.GenBuffers(1, &w.vbo)
	gl.BindVertexArray(w.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	// The frame is already display-sized; NEAREST keeps it 1:1.
	gl.GenTextures(1, &w.texture)
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return nil
}

func newProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)
	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

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
	csources, free := gl.Strs(source + "\x00")
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
		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}
	return shader, nil
}

const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 position;
layout (location = 1) in vec2 texCoord;
out vec2 uv;
void main() {
	uv = texCoord;
	gl_Position = vec4(position, 0.0, 1.0);
}
`

const fragmentShaderSource = `
#version 410 core
in vec2 uv;
out vec4 color;
uniform sampler2D frame;
void main() {
	color = texture(frame, uv);
}
`

func (w *Window) infof(format string, args ...interface{}) {
	if w.Logger != nil {
		w.Logger.Infof("glwindow", format, args...)
	}
}
