package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/zephyrtronium/iterproto"
	"github.com/zephyrtronium/iterproto/internal/textenc"
)

// makeValue builds the value for drain to iterate. A list holds the
// arguments, as ints where they parse. A str is decoded from the joined
// arguments, or from stdin if there are none. A gen yields the arguments and
// returns their count as its exhaustion payload. A range takes start, stop,
// and an optional step.
func makeValue(vm *iterproto.VM, kind, encoding string, args []string, stdin io.Reader) (*iterproto.Object, error) {
	log.Debug().Str("kind", kind).Int("args", len(args)).Msg("building value")
	switch kind {
	case "list":
		items := make([]*iterproto.Object, len(args))
		for i, arg := range args {
			if n, err := strconv.Atoi(arg); err == nil {
				items[i] = vm.NewInt(n)
			} else {
				items[i] = vm.NewStr(arg)
			}
		}
		return vm.NewList(items...), nil
	case "str":
		data := []byte(strings.Join(args, " "))
		if len(args) == 0 {
			b, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read input: %w", err)
			}
			data = b
		}
		return vm.DecodeStr(data, encoding)
	case "range":
		if len(args) < 2 || len(args) > 3 {
			return nil, fmt.Errorf("range takes start, stop, and optional step")
		}
		bounds := []int{0, 0, 1}
		for i, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("bad range bound %q: %w", arg, err)
			}
			bounds[i] = n
		}
		return vm.NewRange(bounds[0], bounds[1], bounds[2])
	case "gen":
		return vm.NewGenerator(func(vm *iterproto.VM, yield func(*iterproto.Object) bool) (*iterproto.Object, error) {
			for _, arg := range args {
				if !yield(vm.NewStr(arg)) {
					return nil, nil
				}
			}
			return vm.NewInt(len(args)), nil
		}), nil
	}
	return nil, fmt.Errorf("unknown kind %q (want list, str, range, or gen)", kind)
}

// drainer iterates values to exhaustion and reports what it sees.
type drainer struct {
	vm *iterproto.VM
	w  io.Writer
	// enc is the encoding of written elements. Empty means UTF-8.
	enc string
}

// item writes the i'th element in the output encoding.
func (d drainer) item(i int, v *iterproto.Object) error {
	b, err := textenc.Encode(d.enc, v.String())
	if err != nil {
		return fmt.Errorf("failed to encode element %d: %w", i, err)
	}
	fmt.Fprintf(d.w, "%d: %s\n", i, b)
	return nil
}

func (d drainer) hint(s *iterproto.HostSeq) {
	lower, upper, ok := s.SizeHint()
	if !ok {
		fmt.Fprintf(d.w, "size hint: %d..?\n", lower)
		return
	}
	fmt.Fprintf(d.w, "size hint: %d..%d\n", lower, upper)
}

// direct advances the iterator handle itself, so the exhaustion payload is
// visible.
func (d drainer) direct(obj *iterproto.Object) error {
	it, err := d.vm.GetIter(obj)
	if err != nil {
		return err
	}
	s, err := it.AsHostSeq(d.vm)
	if err != nil {
		return err
	}
	d.hint(s)
	for i := 0; ; i++ {
		r, err := it.Next(d.vm)
		if err != nil {
			return err
		}
		if r.Done {
			if r.Value == nil {
				fmt.Fprintln(d.w, "exhausted")
			} else {
				fmt.Fprintf(d.w, "exhausted: %v\n", r.Value)
			}
			return nil
		}
		if err := d.item(i, r.Value); err != nil {
			return err
		}
	}
}

// async advances as an asynchronous consumer would, reporting the
// StopAsyncIteration that ends it.
func (d drainer) async(obj *iterproto.Object) error {
	it, err := d.vm.GetIter(obj)
	if err != nil {
		return err
	}
	for i := 0; ; i++ {
		v, err := d.vm.ANext(it)
		if err != nil {
			if d.vm.IsInstance(err, d.vm.StopAsyncIteration) {
				fmt.Fprintln(d.w, err)
				return nil
			}
			return err
		}
		if err := d.item(i, v); err != nil {
			return err
		}
	}
}

// collect drains through a host sequence.
func (d drainer) collect(obj *iterproto.Object) error {
	it, err := d.vm.GetIter(obj)
	if err != nil {
		return err
	}
	s, err := it.AsHostSeq(d.vm)
	if err != nil {
		return err
	}
	d.hint(s)
	items, err := s.Collect()
	for i, v := range items {
		if err := d.item(i, v); err != nil {
			return err
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(d.w, "collected %d\n", len(items))
	return nil
}

// profiled runs f, writing a CPU profile of it to cpu and a heap profile
// after it to mem. An empty name skips that profile.
func profiled(cpu, mem string, f func() error) error {
	if cpu != "" {
		cf, err := os.Create(cpu)
		if err != nil {
			return fmt.Errorf("failed to create CPU profile: %w", err)
		}
		defer cf.Close()
		if err := pprof.StartCPUProfile(cf); err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}
	if err := f(); err != nil {
		return err
	}
	if mem != "" {
		mf, err := os.Create(mem)
		if err != nil {
			return fmt.Errorf("failed to create heap profile: %w", err)
		}
		defer mf.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(mf); err != nil {
			return fmt.Errorf("failed to write heap profile: %w", err)
		}
	}
	return nil
}
