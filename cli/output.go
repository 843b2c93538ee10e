package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Output defines a uniform interface to write to some stream, used so
// command Run methods never call fmt.Print* directly and can be tested
// against an in-memory buffer.
type Output interface {
	Print(text string) (int, error)
	Println(text string) (int, error)
	Printf(format string, args ...interface{}) (int, error)
	Printfln(format string, args ...interface{}) (int, error)
}

// PlainOutput writes data to its Device exactly as given.
type PlainOutput struct {
	Device io.Writer
}

func (o *PlainOutput) Print(text string) (int, error) {
	return o.Device.Write([]byte(text))
}

func (o *PlainOutput) Println(text string) (int, error) {
	n1, err1 := o.Device.Write([]byte(text))
	if err1 != nil {
		return n1, err1
	}
	n2, err2 := o.Device.Write([]byte{'\n'})
	return n1 + n2, err2
}

func (o *PlainOutput) Printf(format string, args ...interface{}) (int, error) {
	return o.Device.Write([]byte(fmt.Sprintf(format, args...)))
}

func (o *PlainOutput) Printfln(format string, args ...interface{}) (int, error) {
	return o.Device.Write([]byte(fmt.Sprintf(format+"\n", args...)))
}

// ColorOutput wraps PlainOutput, tinting lines that look like warnings or
// errors (by a leading "warning:"/"error:" tag) so an interactive terminal
// gets the same at-a-glance severity cue the original tool's log formatter
// gave via its logging levelname.
type ColorOutput struct {
	Plain PlainOutput
}

func severityColor(text string) *color.Color {
	switch {
	case hasPrefixFold(text, "error:") || hasPrefixFold(text, "ERROR "):
		return color.New(color.FgRed)
	case hasPrefixFold(text, "warning:") || hasPrefixFold(text, "WARN "):
		return color.New(color.FgYellow)
	default:
		return nil
	}
}

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if a >= 'A' && a <= 'Z' {
			a += 'a' - 'A'
		}
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

func (o *ColorOutput) Print(text string) (int, error) {
	if c := severityColor(text); c != nil {
		return o.Plain.Print(c.Sprint(text))
	}
	return o.Plain.Print(text)
}

func (o *ColorOutput) Println(text string) (int, error) {
	if c := severityColor(text); c != nil {
		return o.Plain.Println(c.Sprint(text))
	}
	return o.Plain.Println(text)
}

func (o *ColorOutput) Printf(format string, args ...interface{}) (int, error) {
	return o.Print(fmt.Sprintf(format, args...))
}

func (o *ColorOutput) Printfln(format string, args ...interface{}) (int, error) {
	return o.Println(fmt.Sprintf(format, args...))
}
