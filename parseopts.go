package adexpr

// ParseOption is an option for parsing equation text.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	bindopt struct {
		name string
		op   Operator
	}
	bindsopt map[string]Operator
)

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// binds maps identifiers to the operators they stand for.
	binds map[string]Operator
	// vars is the set of variable names referenced this parse.
	vars map[string]bool
	// nodefaults indicates that options have overridden every default
	// function.
	nodefaults bool
}

func (p *parsectx) checkdefaults() {
	if p.nodefaults {
		return
	}
	n := 0
	for k := range p.binds {
		if _, ok := globalfuncs[k]; ok {
			n++
		}
	}
	if n == len(globalfuncs) {
		p.nodefaults = true
	}
}

// Bind makes an identifier in equation text stand for an operator. Binding a
// *Function allows calls of that name; binding nil removes a name, including
// a default function's.
func Bind(name string, op Operator) ParseOption {
	return &bindopt{name, op}
}

func (o *bindopt) parseOption(p parsectx) parsectx {
	if p.binds == nil {
		p.binds = map[string]Operator{}
	}
	p.binds[o.name] = o.op
	return p
}

// BindAll binds a group of identifiers. To remove a name, bind it to nil.
func BindAll(ops map[string]Operator) ParseOption {
	return bindsopt(ops)
}

func (o bindsopt) parseOption(p parsectx) parsectx {
	if p.binds == nil {
		// Always make a copy.
		p.binds = make(map[string]Operator, len(o))
	}
	for k, v := range o {
		p.binds[k] = v
	}
	p.checkdefaults()
	return p
}

// DisableDefaultFuncs disables the default function set during parsing.
// Their names become free for binding to other operators.
func DisableDefaultFuncs() ParseOption {
	return disablefns
}

var disablefns = bindsopt{
	"exp":  nil,
	"ln":   nil,
	"log":  nil,
	"sqrt": nil,
	"abs":  nil,
}

// ParsingPreset creates a parsing preset that may be more efficient when
// using the same bindings for many calls to Parse. A preset panics when
// applied to a non-default parse config, but it is safe to apply other
// options after a preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	if p.binds != nil {
		// If we've bound any names, add unset default functions now.
		for k, v := range globalfuncs {
			if _, ok := p.binds[k]; !ok {
				p.binds[k] = v
			}
		}
		p.nodefaults = true
	}
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p.binds != nil {
		panic("adexpr: preset applied to non-default parse config")
	}
	p.binds = o.binds
	p.nodefaults = o.nodefaults
	return p
}
