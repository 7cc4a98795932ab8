package arena

// Side-table attribute types (spec §3.5). Only node kinds that carry
// one of these occupy an entry in the corresponding map; the map is
// keyed by node id and allocated simultaneously with the node.

// PackageAttribute records a package declaration's dotted name.
// QualifiedName is resolved through the owning Arena's InternTable
// (NameHandle is the handle InternString returned for it), so two
// declarations naming the same package share one interned copy rather
// than each holding an independent slice of the source buffer.
type PackageAttribute struct {
	QualifiedName string
	NameHandle    int32
}

// ImportAttribute records an import declaration's target. A wildcard
// import's QualifiedName ends with a "*" segment. QualifiedName is
// resolved through the owning Arena's InternTable, same as
// PackageAttribute.NameHandle.
type ImportAttribute struct {
	QualifiedName string
	NameHandle    int32
	IsStatic      bool
}

// TypeDeclarationAttribute records a class/interface/enum/record/
// annotation declaration's simple name.
type TypeDeclarationAttribute struct {
	Name string
}

// ParameterAttribute records a parameter's declared name and flags.
type ParameterAttribute struct {
	Name        string
	IsVarargs   bool
	IsFinal     bool
	IsReceiver  bool
}
