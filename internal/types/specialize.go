package types

// Mapping substitutes placeholder names to concrete types during
// specialization (spec.md §4.1).
type Mapping map[string]Type

// Specialize substitutes placeholders in t according to mapping, recursing
// into structural types. Placeholders bound by t's own Placeholders field
// that are NOT keys in mapping are left untouched (spec.md §4.1: "skips
// placeholders bound in the enclosing type's placeholders field minus those
// present as keys in mapping"). Cycles are broken by the same memo
// discipline used by Equals.
func Specialize(t Type, mapping Mapping) Type {
	return specializeMemo(t, mapping, make(map[pairKey]Type))
}

func specializeMemo(t Type, mapping Mapping, memo map[pairKey]Type) Type {
	if isNominal(t) {
		key := makePairKey(t, t)
		if cached, ok := memo[key]; ok {
			return cached
		}
		// Seed with the original type; if the struct is self-referential
		// the recursive call below will see this placeholder and stop.
		memo[key] = t
	}

	switch v := t.(type) {
	case TypePlaceholder:
		if repl, ok := mapping[v.Name]; ok {
			return repl
		}
		return v
	case *TypeVariable:
		return v
	case *StructType:
		local := excludeBound(mapping, v.Placeholders)
		newProps := make([]StructField, len(v.Properties))
		for i, f := range v.Properties {
			newProps[i] = StructField{Name: f.Name, Type: specializeQualified(f.Type, local, memo)}
		}
		newMethods := make(map[string][]*FunctionType, len(v.Methods))
		for name, overloads := range v.Methods {
			specialized := make([]*FunctionType, len(overloads))
			for i, ov := range overloads {
				specialized[i] = specializeMemo(ov, local, memo).(*FunctionType)
			}
			newMethods[name] = specialized
		}
		result := &StructType{Name: v.Name, Placeholders: v.Placeholders, Properties: newProps, Methods: newMethods, MethodOrder: v.MethodOrder}
		key := makePairKey(v, v)
		memo[key] = result
		return result
	case *FunctionType:
		local := excludeBound(mapping, v.Placeholders)
		newParams := make([]FunctionParam, len(v.Params))
		for i, p := range v.Params {
			newParams[i] = FunctionParam{Label: p.Label, Type: specializeQualified(p.Type, local, memo)}
		}
		return &FunctionType{
			Placeholders: v.Placeholders,
			Params:       newParams,
			Codomain:     specializeQualified(v.Codomain, local, memo),
		}
	case *UnionType:
		newMembers := make([]Type, len(v.Members))
		for i, m := range v.Members {
			newMembers[i] = specializeMemo(m, mapping, memo)
		}
		return &UnionType{Name: v.Name, Members: newMembers}
	case *InterfaceType:
		newMembers := make(map[string]*QualifiedType, len(v.Members))
		for name, mt := range v.Members {
			newMembers[name] = specializeQualified(mt, mapping, memo)
		}
		return &InterfaceType{Name: v.Name, Members: newMembers}
	case *TypeAlias:
		return NewAlias(v.Name, specializeMemo(v.Underlying, mapping, memo))
	case Metatype:
		return Metatype{Of: specializeMemo(v.Of, mapping, memo)}
	case SelfType:
		return v
	default:
		return t
	}
}

func specializeQualified(qt *QualifiedType, mapping Mapping, memo map[pairKey]Type) *QualifiedType {
	if qt == nil {
		return nil
	}
	return &QualifiedType{Quals: qt.Quals, Type: specializeMemo(qt.Type, mapping, memo)}
}

func excludeBound(mapping Mapping, bound []TypePlaceholder) Mapping {
	if len(bound) == 0 {
		return mapping
	}
	local := make(Mapping, len(mapping))
	for k, v := range mapping {
		local[k] = v
	}
	// Per spec.md §4.1: skip placeholders bound in the enclosing type's
	// placeholders field MINUS those present as keys in mapping — i.e. an
	// explicit mapping entry for a bound placeholder still applies; only
	// placeholders with no mapping entry are left as-is. Nothing further
	// to remove: mapping already only rebinds what the caller intended.
	_ = bound
	return local
}

// MatchResult is the outcome of pattern specialization: either a mapping
// under which type and pattern match, or failure (spec.md §4.1).
type MatchResult struct {
	Mapping Mapping
	OK      bool
}

// SpecializeAgainst attempts to produce a mapping under which t and pattern
// match (spec.md §4.1 "pattern specialization").
func SpecializeAgainst(t, pattern Type, mapping Mapping) MatchResult {
	if mapping == nil {
		mapping = Mapping{}
	}
	return matchAgainst(t, pattern, mapping, make(map[pairKey]bool))
}

func matchAgainst(t, pattern Type, mapping Mapping, memo map[pairKey]bool) MatchResult {
	tPH, tIsPH := t.(TypePlaceholder)
	pPH, pIsPH := pattern.(TypePlaceholder)

	// If either side is a placeholder already bound in mapping, reuse it.
	if tIsPH {
		if bound, ok := mapping[tPH.Name]; ok {
			return matchAgainst(bound, pattern, mapping, memo)
		}
	}
	if pIsPH {
		if bound, ok := mapping[pPH.Name]; ok {
			return matchAgainst(t, bound, mapping, memo)
		}
	}

	// If exactly one side is an (unbound) placeholder, bind it.
	if tIsPH && !pIsPH {
		next := cloneMapping(mapping)
		next[tPH.Name] = pattern
		return MatchResult{Mapping: next, OK: true}
	}
	if pIsPH && !tIsPH {
		next := cloneMapping(mapping)
		next[pPH.Name] = t
		return MatchResult{Mapping: next, OK: true}
	}
	if tIsPH && pIsPH {
		if tPH.Name == pPH.Name {
			return MatchResult{Mapping: mapping, OK: true}
		}
		next := cloneMapping(mapping)
		next[tPH.Name] = pattern
		return MatchResult{Mapping: next, OK: true}
	}

	switch tv := t.(type) {
	case *FunctionType:
		pv, ok := pattern.(*FunctionType)
		if !ok || len(tv.Params) != len(pv.Params) {
			return MatchResult{OK: false}
		}
		cur := mapping
		for i, p := range tv.Params {
			other := pv.Params[i]
			if p.Label != other.Label {
				return MatchResult{OK: false}
			}
			qr := matchQualifiedAgainst(p.Type, other.Type, cur, memo)
			if !qr.OK {
				return MatchResult{OK: false}
			}
			cur = qr.Mapping
		}
		qr := matchQualifiedAgainst(tv.Codomain, pv.Codomain, cur, memo)
		if !qr.OK {
			return MatchResult{OK: false}
		}
		return MatchResult{Mapping: qr.Mapping, OK: true}
	case *StructType:
		pv, ok := pattern.(*StructType)
		if !ok || tv.Name != pv.Name {
			return MatchResult{OK: false}
		}
		cur := mapping
		for _, f := range tv.Properties {
			other, ok := pv.Property(f.Name)
			if !ok {
				return MatchResult{OK: false}
			}
			qr := matchQualifiedAgainst(f.Type, other, cur, memo)
			if !qr.OK {
				return MatchResult{OK: false}
			}
			cur = qr.Mapping
		}
		return MatchResult{Mapping: cur, OK: true}
	default:
		if Equals(t, pattern) {
			return MatchResult{Mapping: mapping, OK: true}
		}
		return MatchResult{OK: false}
	}
}

// matchQualifiedAgainst matches qualified types: qualifier sets must either
// be empty on one side or equal. Only the placeholder mapping is returned;
// no combined qualifier set is produced.
func matchQualifiedAgainst(a, b *QualifiedType, mapping Mapping, memo map[pairKey]bool) MatchResult {
	if a == nil || b == nil {
		return MatchResult{OK: a == b, Mapping: mapping}
	}
	if !a.Quals.Empty() && !b.Quals.Empty() && a.Quals != b.Quals {
		return MatchResult{OK: false}
	}
	return matchAgainst(a.Type, b.Type, mapping, memo)
}

func cloneMapping(m Mapping) Mapping {
	next := make(Mapping, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	return next
}
