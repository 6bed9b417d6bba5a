package persist

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"pulseq/instr"
	"pulseq/port"
	"pulseq/seq"
	"pulseq/shape"
)

// Sentinel errors for setting composition.
var (
	// ErrUnsupportedKind indicates a setting names an instruction kind
	// this package cannot compose (a Functional node, or an unrecognized
	// shape family).
	ErrUnsupportedKind = errors.New("persist: unsupported instruction kind")

	// ErrUnknownPort indicates a LoadSetting document names a port that
	// is absent from the registry the caller supplied (spec.md §6,
	// "Ports are reconstructed by name only").
	ErrUnknownPort = errors.New("persist: unknown port")
)

// instructionSetting is the YAML shape of one serialized Instruction.
// Shape and Align are populated only for the kinds that need them.
type instructionSetting struct {
	Kind   string             `yaml:"kind"`
	Shape  string             `yaml:"shape,omitempty"`
	Align  string             `yaml:"align,omitempty"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// entrySetting is the YAML shape of one (instruction, target ports) pair.
// Ports carries every target for a Trigger; Port carries the single
// target for every other kind (spec.md §6, "dump_setting").
type entrySetting struct {
	Instruction instructionSetting `yaml:"instruction"`
	Port        string             `yaml:"port,omitempty"`
	Ports       []string           `yaml:"ports,omitempty"`
}

// Document is the top-level YAML document produced by DumpSetting and
// consumed by LoadSetting.
type Document struct {
	Entries []entrySetting `yaml:"entries"`
}

var shapeFactories = map[string]func() shape.Shape{
	"Square":           func() shape.Shape { return shape.NewSquare(0, 0) },
	"Gaussian":         func() shape.Shape { return shape.NewGaussian(0, 0, 0, false) },
	"HyperbolicSecant": func() shape.Shape { return shape.NewHyperbolicSecant(0, 0, 0, false) },
	"RaisedCos":        func() shape.Shape { return shape.NewRaisedCos(0, 0) },
	"Step":             func() shape.Shape { return shape.NewStep(0, 0, 0) },
}

func shapeKind(sh shape.Shape) (string, error) {
	switch sh.(type) {
	case *shape.Square:
		return "Square", nil
	case *shape.Gaussian:
		return "Gaussian", nil
	case *shape.HyperbolicSecant:
		return "HyperbolicSecant", nil
	case *shape.RaisedCos:
		return "RaisedCos", nil
	case *shape.Step:
		return "Step", nil
	default:
		return "", fmt.Errorf("%w: shape %T", ErrUnsupportedKind, sh)
	}
}

// describe converts inst into its YAML setting, or ErrUnsupportedKind for
// a Functional node.
func describe(inst instr.Instruction) (instructionSetting, error) {
	switch v := inst.(type) {
	case *instr.Pulse:
		kind, err := shapeKind(v.ShapeTemplate())
		if err != nil {
			return instructionSetting{}, err
		}
		params := v.RawParams()
		if ifFreq, ok := v.RawIFFreqOverride(); ok {
			params["if_freq_override"] = ifFreq
		}

		return instructionSetting{Kind: "Pulse", Shape: kind, Params: params}, nil

	case *instr.Delay:
		return instructionSetting{Kind: "Delay", Params: map[string]float64{"duration": v.RawDuration()}}, nil

	case *instr.VirtualZ:
		return instructionSetting{Kind: "VirtualZ", Params: map[string]float64{"phase": v.RawPhase()}}, nil

	case *instr.SetDetuning:
		return instructionSetting{Kind: "SetDetuning", Params: map[string]float64{"detuning": v.RawDetuning()}}, nil

	case *instr.ResetPhase:
		return instructionSetting{Kind: "ResetPhase", Params: map[string]float64{"phase": v.RawPhase()}}, nil

	case *instr.Acquire:
		return instructionSetting{Kind: "Acquire", Params: map[string]float64{"duration": v.RawDuration()}}, nil

	case *instr.Trigger:
		return instructionSetting{Kind: "Trigger", Align: string(v.Align())}, nil

	default:
		return instructionSetting{}, fmt.Errorf("%w: %T", ErrUnsupportedKind, inst)
	}
}

// compose reconstructs an Instruction from its YAML setting.
func compose(s instructionSetting) (instr.Instruction, error) {
	switch s.Kind {
	case "Pulse":
		factory, ok := shapeFactories[s.Shape]
		if !ok {
			return nil, fmt.Errorf("%w: shape %q", ErrUnsupportedKind, s.Shape)
		}
		params := make(map[string]instr.Param, len(s.Params))
		var ifOverride *float64
		for k, v := range s.Params {
			if k == "if_freq_override" {
				cp := v
				ifOverride = &cp

				continue
			}
			params[k] = instr.Literal(v)
		}
		pu := instr.NewPulse(factory(), params)
		if ifOverride != nil {
			pu = pu.WithIFFreqOverride(instr.Literal(*ifOverride))
		}

		return pu, nil

	case "Delay":
		return instr.NewDelay(instr.Literal(s.Params["duration"])), nil

	case "VirtualZ":
		return instr.NewVirtualZ(instr.Literal(s.Params["phase"])), nil

	case "SetDetuning":
		return instr.NewSetDetuning(instr.Literal(s.Params["detuning"])), nil

	case "ResetPhase":
		return instr.NewResetPhase(instr.Literal(s.Params["phase"])), nil

	case "Acquire":
		return instr.NewAcquire(instr.Literal(s.Params["duration"])), nil

	case "Trigger":
		return instr.NewTrigger(instr.Align(s.Align))

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, s.Kind)
	}
}

// DumpSetting walks s's permanent entry list and marshals it to YAML, one
// entrySetting per (instruction, target ports) pair (spec.md §6,
// "dump_setting"). Functional instruction nodes (Union/Adjoint/Container)
// and Pulses built on a composite shape (FlatTop/Derivative/Union/Product/
// Adjoint, as opposed to one of the five leaf shapes in shapeFactories)
// are not round-trippable and cause ErrUnsupportedKind.
func DumpSetting(s *seq.Sequence) ([]byte, error) {
	doc := Document{}
	for _, e := range s.Entries() {
		setting, err := describe(e.Inst)
		if err != nil {
			return nil, err
		}

		es := entrySetting{Instruction: setting}
		if _, ok := e.Inst.(*instr.Trigger); ok {
			names := make([]string, len(e.Targets))
			for i, p := range e.Targets {
				names[i] = p.Name()
			}
			es.Ports = names
		} else {
			es.Port = e.Targets[0].Name()
		}
		doc.Entries = append(doc.Entries, es)
	}

	return yaml.Marshal(doc)
}

// LoadSetting parses a YAML document produced by DumpSetting and replays
// it into a fresh Sequence, resolving each entry's port name(s) against
// ports (spec.md §6, "Ports are reconstructed by name only: positional
// state is not persisted" — callers must supply already-constructed,
// freshly-reset *port.Port values keyed by name).
func LoadSetting(data []byte, ports map[string]*port.Port) (*seq.Sequence, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("persist: unmarshaling: %w", err)
	}

	s := seq.New()
	for _, es := range doc.Entries {
		inst, err := compose(es.Instruction)
		if err != nil {
			return nil, err
		}

		if tr, ok := inst.(*instr.Trigger); ok {
			targets := make([]*port.Port, len(es.Ports))
			for i, name := range es.Ports {
				p, ok := ports[name]
				if !ok {
					return nil, fmt.Errorf("%w: %q", ErrUnknownPort, name)
				}
				targets[i] = p
			}
			if err := s.Trigger(targets, tr.Align()); err != nil {
				return nil, err
			}

			continue
		}

		p, ok := ports[es.Port]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPort, es.Port)
		}
		if err := s.Add(inst, p); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// PortNames returns the distinct port names referenced by a YAML document
// produced by DumpSetting, in first-sighting order. Callers construct a
// *port.Port per name (spec.md §6, "Ports are reconstructed by name only")
// before passing the result to LoadSetting.
func PortNames(data []byte) ([]string, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("persist: unmarshaling: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	for _, es := range doc.Entries {
		add(es.Port)
		for _, n := range es.Ports {
			add(n)
		}
	}

	return names, nil
}
