package lci

import "context"

// Generator is an auto-start generator. Its state is read from the "state"
// field while commands go to the separate "command" field.
type Generator struct {
	device
}

func NewGenerator(client *Client, thing Thing) (*Generator, error) {
	d, err := newDevice(client, thing, DeviceTypeGenerator)
	if err != nil {
		return nil, err
	}
	return &Generator{device: d}, nil
}

func (g *Generator) State(ctx context.Context) (GeneratorState, error) {
	return readField(ctx, &g.device, "state", ParseGeneratorState)
}

// On asks the generator to start. It passes through Priming and Starting
// before Running; callers poll State to follow it.
func (g *Generator) On(ctx context.Context) error {
	return g.writeField(ctx, "command", SwitchOn.Value())
}

func (g *Generator) Off(ctx context.Context) error {
	return g.writeField(ctx, "command", SwitchOff.Value())
}
