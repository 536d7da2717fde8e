package ast

// IdentSig is a bare type name, possibly with explicit specialization
// arguments, e.g. `Int` or `Array<String>`.
type IdentSig struct {
	Range     Range
	Name      string
	SpecArgs  []TypeSig
}

func (s *IdentSig) Pos() Range             { return s.Range }
func (s *IdentSig) Accept(v Visitor) Signal { return v.VisitIdentSig(s) }
func (s *IdentSig) typeSigNode()            {}
func (s *IdentSig) walkChildren(v Visitor) {
	for _, a := range s.SpecArgs {
		Walk(v, a)
	}
}

// QualSig is a qualified type signature, e.g. `@mut Int` or `@cst @mut T`.
// The qualifier set is parsed rather than computed, so it's carried as raw
// flags here instead of a types.QualSet (that conversion happens in the
// constraint generator).
type QualSig struct {
	Range    Range
	Cst      bool
	Mut      bool
	Subject  TypeSig
}

func (s *QualSig) Pos() Range             { return s.Range }
func (s *QualSig) Accept(v Visitor) Signal { return v.VisitQualSig(s) }
func (s *QualSig) typeSigNode()            {}
func (s *QualSig) walkChildren(v Visitor) {
	Walk(v, s.Subject)
}

// FunSigParam is one parameter slot of a FunSig.
type FunSigParam struct {
	Label     string // "" if unlabeled
	Signature TypeSig
}

// FunSig is a function type signature, e.g. `(Int, label: Bool) -> String`.
type FunSig struct {
	Range    Range
	Params   []FunSigParam
	Codomain TypeSig
}

func (s *FunSig) Pos() Range             { return s.Range }
func (s *FunSig) Accept(v Visitor) Signal { return v.VisitFunSig(s) }
func (s *FunSig) typeSigNode()            {}
func (s *FunSig) walkChildren(v Visitor) {
	for _, p := range s.Params {
		Walk(v, p.Signature)
	}
	Walk(v, s.Codomain)
}

// UnionSig is an inline union type signature written as a `|`-separated
// list of alternatives, e.g. `Int | String`.
type UnionSig struct {
	Range      Range
	Alternatives []TypeSig
}

func (s *UnionSig) Pos() Range             { return s.Range }
func (s *UnionSig) Accept(v Visitor) Signal { return v.VisitUnionSig(s) }
func (s *UnionSig) typeSigNode()            {}
func (s *UnionSig) walkChildren(v Visitor) {
	for _, a := range s.Alternatives {
		Walk(v, a)
	}
}
