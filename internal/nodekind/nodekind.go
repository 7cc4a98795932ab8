// Package nodekind enumerates the AST node kinds an Arena can store
// (spec §6.5), as a single byte so it fits the 16-byte node record.
package nodekind

// Kind is the one-byte node_kind field of an arena node record.
type Kind uint8

const (
	Invalid Kind = iota

	CompilationUnit
	PackageDeclaration
	ImportDeclaration
	StaticImportDeclaration
	ModuleImportDeclaration
	ModuleDeclaration

	ClassDeclaration
	InterfaceDeclaration
	EnumDeclaration
	EnumConstant
	RecordDeclaration
	RecordComponent
	AnnotationDeclaration
	AnnotationElement

	MethodDeclaration
	ConstructorDeclaration
	FieldDeclaration
	VariableDeclarator
	ParameterDeclaration
	StaticInitializer
	InstanceInitializer

	Block
	IfStatement
	WhileStatement
	DoWhileStatement
	ForStatement
	EnhancedForStatement
	ReturnStatement
	ThrowStatement
	BreakStatement
	ContinueStatement
	TryStatement
	CatchClause
	ResourceSpecification
	SwitchStatement
	SwitchExpression
	SwitchRule
	SwitchLabel
	SynchronizedStatement
	YieldStatement
	AssertStatement
	ExpressionStatement
	LocalVariableDeclaration
	LabeledStatement
	EmptyStatement

	Annotation
	AnnotationArgument
	ArrayInitializer
	ArrayCreation
	ArrayType
	ArrayAccess
	ObjectCreation
	AnonymousClassBody
	LambdaExpression
	LambdaParameters
	MethodReference
	MethodInvocation
	FieldAccess
	ClassLiteral
	CastExpression
	ConditionalExpression
	BinaryExpression
	UnaryExpression
	PostfixExpression
	AssignmentExpression
	InstanceofExpression
	ParenthesizedExpression
	ArgumentList

	PrimitiveType
	ReferenceType
	ParameterizedType
	TypeArgumentList
	WildcardType
	UnionType
	IntersectionType

	TypePattern
	RecordPattern
	UnnamedPattern
	PrimitivePattern

	QualifiedName
	Identifier
	ThisExpression
	SuperExpression

	IntegerLiteral
	LongLiteral
	FloatLiteral
	DoubleLiteral
	StringLiteral
	TextBlockLiteral
	CharLiteral
	BooleanLiteral
	NullLiteral
	StringTemplateExpression

	LineComment
	BlockComment
	JavadocComment

	ErrorNode
)

var names = map[Kind]string{
	Invalid:                  "INVALID",
	CompilationUnit:          "COMPILATION_UNIT",
	PackageDeclaration:       "PACKAGE_DECLARATION",
	ImportDeclaration:        "IMPORT_DECLARATION",
	StaticImportDeclaration:  "STATIC_IMPORT_DECLARATION",
	ModuleImportDeclaration:  "MODULE_IMPORT_DECLARATION",
	ModuleDeclaration:        "MODULE_DECLARATION",
	ClassDeclaration:         "CLASS_DECLARATION",
	InterfaceDeclaration:     "INTERFACE_DECLARATION",
	EnumDeclaration:          "ENUM_DECLARATION",
	EnumConstant:             "ENUM_CONSTANT",
	RecordDeclaration:        "RECORD_DECLARATION",
	RecordComponent:          "RECORD_COMPONENT",
	AnnotationDeclaration:    "ANNOTATION_DECLARATION",
	AnnotationElement:        "ANNOTATION_ELEMENT",
	MethodDeclaration:        "METHOD_DECLARATION",
	ConstructorDeclaration:   "CONSTRUCTOR_DECLARATION",
	FieldDeclaration:         "FIELD_DECLARATION",
	VariableDeclarator:       "VARIABLE_DECLARATOR",
	ParameterDeclaration:     "PARAMETER_DECLARATION",
	StaticInitializer:        "STATIC_INITIALIZER",
	InstanceInitializer:      "INSTANCE_INITIALIZER",
	Block:                    "BLOCK",
	IfStatement:              "IF_STATEMENT",
	WhileStatement:           "WHILE_STATEMENT",
	DoWhileStatement:         "DO_WHILE_STATEMENT",
	ForStatement:             "FOR_STATEMENT",
	EnhancedForStatement:     "ENHANCED_FOR_STATEMENT",
	ReturnStatement:          "RETURN_STATEMENT",
	ThrowStatement:           "THROW_STATEMENT",
	BreakStatement:           "BREAK_STATEMENT",
	ContinueStatement:        "CONTINUE_STATEMENT",
	TryStatement:             "TRY_STATEMENT",
	CatchClause:              "CATCH_CLAUSE",
	ResourceSpecification:    "RESOURCE_SPECIFICATION",
	SwitchStatement:          "SWITCH_STATEMENT",
	SwitchExpression:         "SWITCH_EXPRESSION",
	SwitchRule:               "SWITCH_RULE",
	SwitchLabel:              "SWITCH_LABEL",
	SynchronizedStatement:    "SYNCHRONIZED_STATEMENT",
	YieldStatement:           "YIELD_STATEMENT",
	AssertStatement:          "ASSERT_STATEMENT",
	ExpressionStatement:      "EXPRESSION_STATEMENT",
	LocalVariableDeclaration: "LOCAL_VARIABLE_DECLARATION",
	LabeledStatement:         "LABELED_STATEMENT",
	EmptyStatement:           "EMPTY_STATEMENT",
	Annotation:               "ANNOTATION",
	AnnotationArgument:       "ANNOTATION_ARGUMENT",
	ArrayInitializer:         "ARRAY_INITIALIZER",
	ArrayCreation:            "ARRAY_CREATION",
	ArrayType:                "ARRAY_TYPE",
	ArrayAccess:              "ARRAY_ACCESS",
	ObjectCreation:           "OBJECT_CREATION",
	AnonymousClassBody:       "ANONYMOUS_CLASS_BODY",
	LambdaExpression:         "LAMBDA_EXPRESSION",
	LambdaParameters:         "LAMBDA_PARAMETERS",
	MethodReference:          "METHOD_REFERENCE",
	MethodInvocation:         "METHOD_INVOCATION",
	FieldAccess:              "FIELD_ACCESS",
	ClassLiteral:             "CLASS_LITERAL",
	CastExpression:           "CAST_EXPRESSION",
	ConditionalExpression:    "CONDITIONAL_EXPRESSION",
	BinaryExpression:         "BINARY_EXPRESSION",
	UnaryExpression:          "UNARY_EXPRESSION",
	PostfixExpression:        "POSTFIX_EXPRESSION",
	AssignmentExpression:     "ASSIGNMENT_EXPRESSION",
	InstanceofExpression:     "INSTANCEOF_EXPRESSION",
	ParenthesizedExpression:  "PARENTHESIZED_EXPRESSION",
	ArgumentList:             "ARGUMENT_LIST",
	PrimitiveType:            "PRIMITIVE_TYPE",
	ReferenceType:            "REFERENCE_TYPE",
	ParameterizedType:        "PARAMETERIZED_TYPE",
	TypeArgumentList:         "TYPE_ARGUMENT_LIST",
	WildcardType:             "WILDCARD_TYPE",
	UnionType:                "UNION_TYPE",
	IntersectionType:         "INTERSECTION_TYPE",
	TypePattern:              "TYPE_PATTERN",
	RecordPattern:            "RECORD_PATTERN",
	UnnamedPattern:           "UNNAMED_PATTERN",
	PrimitivePattern:         "PRIMITIVE_PATTERN",
	QualifiedName:            "QUALIFIED_NAME",
	Identifier:               "IDENTIFIER",
	ThisExpression:           "THIS_EXPRESSION",
	SuperExpression:          "SUPER_EXPRESSION",
	IntegerLiteral:           "INTEGER_LITERAL",
	LongLiteral:              "LONG_LITERAL",
	FloatLiteral:             "FLOAT_LITERAL",
	DoubleLiteral:            "DOUBLE_LITERAL",
	StringLiteral:            "STRING_LITERAL",
	TextBlockLiteral:         "TEXT_BLOCK_LITERAL",
	CharLiteral:              "CHAR_LITERAL",
	BooleanLiteral:           "BOOLEAN_LITERAL",
	NullLiteral:              "NULL_LITERAL",
	StringTemplateExpression: "STRING_TEMPLATE_EXPRESSION",
	LineComment:              "LINE_COMMENT",
	BlockComment:             "BLOCK_COMMENT",
	JavadocComment:           "JAVADOC_COMMENT",
	ErrorNode:                "ERROR",
}

// String returns the catalog name for kind, or "UNKNOWN" if kind is
// not a declared kind.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether kind is a declared node kind (spec §3.3 invariant).
func (k Kind) Valid() bool {
	_, ok := names[k]
	return ok && k != Invalid
}
