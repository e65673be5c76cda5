package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

// countFlag is a decimal, non-negative integer flag. Only the first
// occurrence on the command line is used.
type countFlag struct {
	value *int
	set   bool
}

var _ pflag.Value = (*countFlag)(nil)

func newCountFlag(p *int) *countFlag {
	return &countFlag{value: p}
}

func (f *countFlag) Set(s string) error {
	if f.set {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, strconv.IntSize-1)
	if err != nil {
		return fmt.Errorf("%q is not a non-negative decimal integer", s)
	}
	*f.value = int(n)
	f.set = true
	return nil
}

func (f *countFlag) String() string {
	if f.value == nil {
		return "0"
	}
	return strconv.Itoa(*f.value)
}

func (f *countFlag) Type() string { return "count" }

// firstStringFlag keeps the first value given for a repeated string flag.
type firstStringFlag struct {
	value *string
	set   bool
}

var _ pflag.Value = (*firstStringFlag)(nil)

func newFirstStringFlag(p *string) *firstStringFlag {
	return &firstStringFlag{value: p}
}

func (f *firstStringFlag) Set(s string) error {
	if f.set {
		return nil
	}
	*f.value = s
	f.set = true
	return nil
}

func (f *firstStringFlag) String() string {
	if f.value == nil {
		return ""
	}
	return *f.value
}

func (f *firstStringFlag) Type() string { return "string" }
