package decompiler

import "github.com/deepnoodle-ai/codom/codom"

// declareLocals declares every local slot of the body in a data section that
// precedes the code section.
func (s *state) declareLocals() error {
	data := codom.NewBlock(codom.BlockData)
	s.data = data
	s.blocks.open(data)
	for i := 0; i < s.body.LocalCount(); i++ {
		local := s.body.LocalAt(i)
		name, err := s.nameFor(local)
		if err != nil {
			return err
		}
		ref := codom.NewReference(codom.RefLocal, name, local.Type)
		ref.Index = i
		s.locals = append(s.locals, ref)
		s.declared = append(s.declared, local)
		if err := s.emit(codom.NewDeclaration(ref.Clone().(*codom.Reference))); err != nil {
			return err
		}
	}
	_, err := s.blocks.close(codom.BlockData, s.label)
	return err
}
