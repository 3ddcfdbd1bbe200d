package grammar

// C returns the rule table for the supported C subset. Expression levels
// and list productions are left-recursive; shared prefixes are factored
// into tail productions so that alternatives sharing a long prefix do not
// get explored in parallel. Type names are keyword-based: typedef names
// are not usable as types.
func C() (*Grammar, error) {
	b := NewBuilder("Start")

	b.Alternatives("Start", "TopStatements")
	b.Alternatives("TopStatements",
		"",
		"TopStatement TopStatements",
	)
	b.Alternatives("TopStatement",
		`Declaration ";"`,
		`ForwardDeclaration ";"`,
		`FunctionDefinition`,
		`Typedef ";"`,
		`TypeDeclaration ";"`,
		`";"`,
	)
	b.Alternatives("ForwardDeclaration", "FunctionHeader")
	b.Alternatives("FunctionDefinition", "FunctionHeader Block")
	b.Alternatives("FunctionHeader", `TypeWithIdentifier "(" ParameterList ")"`)
	b.Alternatives("ParameterList",
		"",
		"Parameters",
	)
	b.Alternatives("Parameters",
		"Parameter",
		`Parameters "," Parameter`,
	)
	b.Alternatives("Parameter",
		"Type",
		"TypeWithIdentifier Arrays",
	)
	b.Alternatives("Typedef", `"typedef" TypeWithIdentifier Arrays`)
	b.Alternatives("TypeDeclaration", "Type")
	b.Alternatives("Declaration", "TypeWithIdentifier Arrays Init")
	b.Alternatives("Init",
		"",
		`"=" Initializer`,
	)
	b.Alternatives("Initializer",
		"Assignment",
		`"{" InitializerList OptComma "}"`,
	)
	b.Alternatives("OptComma",
		"",
		`","`,
	)
	b.Alternatives("InitializerList",
		"Initializer",
		`InitializerList "," Initializer`,
	)
	b.Alternatives("Arrays",
		"",
		`"[" "]" Arrays`,
		`"[" Conditional "]" Arrays`,
	)

	// Types
	b.Alternatives("TypeWithIdentifier", "Type Identifier")
	b.Alternatives("Type", "Specifiers Pointers")
	b.Alternatives("Specifiers",
		"Specifier",
		"Specifiers Specifier",
	)
	b.Alternatives("Specifier",
		`"void"`, `"char"`, `"short"`, `"int"`, `"long"`, `"float"`, `"double"`,
		`"signed"`, `"unsigned"`, `"_Bool"`, `"_Complex"`, `"_Imaginary"`,
		`"const"`, `"volatile"`, `"restrict"`,
		`"static"`, `"extern"`, `"auto"`, `"register"`, `"inline"`,
		"StructType",
		"UnionType",
		"EnumType",
	)
	b.Alternatives("Pointers",
		"",
		`"*" Pointers`,
		`"*" "const" Pointers`,
		`"*" "volatile" Pointers`,
		`"*" "restrict" Pointers`,
	)
	b.Alternatives("StructType",
		`"struct" Identifier`,
		`"struct" Identifier "{" Fields "}"`,
		`"struct" "{" Fields "}"`,
	)
	b.Alternatives("UnionType",
		`"union" Identifier`,
		`"union" Identifier "{" Fields "}"`,
		`"union" "{" Fields "}"`,
	)
	b.Alternatives("Fields",
		"",
		"Field Fields",
	)
	b.Alternatives("Field", `TypeWithIdentifier Arrays ";"`)
	b.Alternatives("EnumType",
		`"enum" Identifier`,
		`"enum" Identifier "{" Enumerators "}"`,
		`"enum" "{" Enumerators "}"`,
	)
	b.Alternatives("Enumerators",
		"Enumerator",
		`Enumerators ","`,
		`Enumerators "," Enumerator`,
	)
	b.Alternatives("Enumerator",
		"Identifier",
		`Identifier "=" Conditional`,
	)

	// Statements. An if statement whose body is matched may take an
	// else; an else always binds to the nearest if.
	b.Alternatives("Block", `"{" BlockItems "}"`)
	b.Alternatives("BlockItems",
		"",
		"BlockItem BlockItems",
	)
	b.Alternatives("BlockItem",
		`Declaration ";"`,
		"Statement",
		`"case" Conditional ":"`,
		`"default" ":"`,
	)
	b.Alternatives("Statement",
		`"if" "(" Expression ")" IfBody`,
		`"while" "(" Expression ")" Statement`,
		`"for" "(" ForInit ";" OptExpression ";" OptExpression ")" Statement`,
		"Simple",
	)
	b.Alternatives("IfBody",
		"Matched ElseTail",
		"Open",
	)
	b.Alternatives("ElseTail",
		"",
		`"else" Statement`,
	)
	b.Alternatives("Matched",
		`"if" "(" Expression ")" Matched "else" Matched`,
		`"while" "(" Expression ")" Matched`,
		`"for" "(" ForInit ";" OptExpression ";" OptExpression ")" Matched`,
		"Simple",
	)
	b.Alternatives("Open",
		`"if" "(" Expression ")" OpenTail`,
		`"while" "(" Expression ")" Open`,
		`"for" "(" ForInit ";" OptExpression ";" OptExpression ")" Open`,
	)
	b.Alternatives("OpenTail",
		"Open",
		"Matched OpenElse",
	)
	b.Alternatives("OpenElse",
		"",
		`"else" Open`,
	)
	b.Alternatives("Simple",
		"Block",
		`Expression ";"`,
		`";"`,
		`"return" ";"`,
		`"return" Expression ";"`,
		`"break" ";"`,
		`"continue" ";"`,
		`"do" Statement "while" "(" Expression ")" ";"`,
		`"switch" "(" Expression ")" Block`,
	)
	b.Alternatives("ForInit",
		"",
		"Expression",
		"Declaration",
	)
	b.Alternatives("OptExpression",
		"",
		"Expression",
	)

	// Expressions, lowest precedence first.
	b.Alternatives("Expression",
		"Assignment",
		`Expression "," Assignment`,
	)
	b.Alternatives("Assignment", "Conditional AssignTail")
	b.Alternatives("AssignTail",
		"",
		"AssignOp Assignment",
	)
	b.Alternatives("AssignOp",
		`"="`, `"+="`, `"-="`, `"*="`, `"/="`, `"%="`,
		`"<<="`, `">>="`, `"&="`, `"|="`, `"^="`,
	)
	b.Alternatives("Conditional", "LogicalOr ConditionalTail")
	b.Alternatives("ConditionalTail",
		"",
		`"?" Expression ":" Conditional`,
	)
	b.Alternatives("LogicalOr",
		"LogicalAnd",
		`LogicalOr "||" LogicalAnd`,
	)
	b.Alternatives("LogicalAnd",
		"BitOr",
		`LogicalAnd "&&" BitOr`,
	)
	b.Alternatives("BitOr",
		"BitXor",
		`BitOr "|" BitXor`,
	)
	b.Alternatives("BitXor",
		"BitAnd",
		`BitXor "^" BitAnd`,
	)
	b.Alternatives("BitAnd",
		"Equality",
		`BitAnd "&" Equality`,
	)
	b.Alternatives("Equality",
		"Relational",
		`Equality "==" Relational`,
		`Equality "!=" Relational`,
	)
	b.Alternatives("Relational",
		"Shift",
		`Relational "<" Shift`,
		`Relational ">" Shift`,
		`Relational "<=" Shift`,
		`Relational ">=" Shift`,
	)
	b.Alternatives("Shift",
		"Additive",
		`Shift "<<" Additive`,
		`Shift ">>" Additive`,
	)
	b.Alternatives("Additive",
		"Multiplicative",
		`Additive "+" Multiplicative`,
		`Additive "-" Multiplicative`,
	)
	b.Alternatives("Multiplicative",
		"Cast",
		`Multiplicative "*" Cast`,
		`Multiplicative "/" Cast`,
		`Multiplicative "%" Cast`,
	)
	b.Alternatives("Cast",
		"Unary",
		`"(" Type ")" Cast`,
	)
	b.Alternatives("Unary",
		"Postfix",
		`"++" Unary`,
		`"--" Unary`,
		"UnaryOp Cast",
		`"sizeof" Unary`,
		`"sizeof" "(" Type ")"`,
	)
	b.Alternatives("UnaryOp",
		`"&"`, `"*"`, `"+"`, `"-"`, `"~"`, `"!"`,
	)
	b.Alternatives("Postfix",
		"Primary",
		`Postfix "[" Expression "]"`,
		`Postfix "(" Arguments ")"`,
		`Postfix "." Identifier`,
		`Postfix "->" Identifier`,
		`Postfix "++"`,
		`Postfix "--"`,
	)
	b.Alternatives("Arguments",
		"",
		"ArgumentList",
	)
	b.Alternatives("ArgumentList",
		"Assignment",
		`ArgumentList "," Assignment`,
	)
	b.Alternatives("Primary",
		"Identifier",
		"NumericLiteral",
		"StringLiteral",
		`"(" Expression ")"`,
	)

	return b.Build()
}

// MustC is C for callers that cannot recover from a broken built-in
// table.
func MustC() *Grammar {
	g, err := C()
	if err != nil {
		panic(err)
	}
	return g
}
