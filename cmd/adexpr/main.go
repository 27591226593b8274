// Command adexpr is a calculator over the adexpr equation grammar. It parses
// each input as an operator tree and evaluates it against an empty context,
// so only numeric equations and the default functions are available; grid
// operators need a program, not a shell.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mdgrid/adexpr"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb string
		given        [][2]string
		nl, echo     bool
	)
	addgiven := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`scalar definitions must be "name=value", not %q`, s)
		}
		given = append(given, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value scalar binding (any number of times)", addgiven)
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate equations")
	flag.BoolVar(&echo, "echo", false, "print operator trees")
	flag.Parse()

	var opts []adexpr.ParseOption
	for _, d := range given {
		nm, vl := d[0], d[1]
		r, err := eval(vl, nil)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		v, ok := r.(adexpr.Num)
		if !ok {
			log.Fatalf("setting %s: %s is not a scalar", nm, vl)
		}
		opts = append(opts, adexpr.Bind(nm, adexpr.NewScalar(float64(v))))
	}

	srcs, err := inputs(inname, nl, flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	verb += "\n"
	ctx := adexpr.StaticContext{}
	for _, src := range srcs {
		e, err := adexpr.ParseString(src, opts...)
		if err != nil {
			log.Fatal(err)
		}
		if echo {
			fmt.Printf("%v : ", e)
		}
		r, err := e.Eval(ctx)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf(verb, r)
	}
}

// eval parses and evaluates one equation with an empty context.
func eval(src string, opts []adexpr.ParseOption) (adexpr.Value, error) {
	e, err := adexpr.ParseString(src, opts...)
	if err != nil {
		return nil, err
	}
	return e.Eval(adexpr.StaticContext{})
}

// inputs collects equation sources from a file, stdin, or arguments.
func inputs(inname string, nl bool, args []string) ([]string, error) {
	var srcs []string
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer in.Close()
		f = in
	case inname == "-", len(args) == 0:
		f = os.Stdin
	}
	if f != nil {
		b, err := io.ReadAll(bufio.NewReader(f))
		if err != nil {
			return nil, err
		}
		text := strings.TrimSpace(string(b))
		if text != "" {
			if nl {
				for _, line := range strings.Split(text, "\n") {
					if line = strings.TrimSpace(line); line != "" {
						srcs = append(srcs, line)
					}
				}
			} else {
				srcs = append(srcs, text)
			}
		}
	}
	srcs = append(srcs, args...)
	return srcs, nil
}
