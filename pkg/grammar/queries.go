// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package grammar

var cQueries = []PreparedQuery{
	{Name: "comments", Description: "Comments (line and block)", Source: `(comment) @comment`},
	{Name: "strings", Description: "String literals, quotes included", Source: `(string_literal) @string`},
	{Name: "includes", Description: "Paths of #include directives", Source: `(preproc_include path: (_) @path)`},
	{Name: "function-names", Description: "Names of declared functions", Source: `(function_declarator declarator: (identifier) @name)`},
}

var csharpQueries = []PreparedQuery{
	{Name: "comments", Description: "Comments (XML, inline, doc)", Source: `(comment) @comment`},
	{
		Name:        "strings",
		Description: "Strings (regular, verbatim, interpolated minus interpolations)",
		Source: `
[
	(interpolated_string_expression (interpolation) @` + IgnorePrefix + `)
	(string_literal)
	(verbatim_string_literal)
]
@string`,
	},
	{Name: "usings", Description: "Namespaces of using directives", Source: `(using_directive [(identifier) (qualified_name)] @import)`},
}

var goQueries = []PreparedQuery{
	{Name: "comments", Description: "Comments (line and block)", Source: `(comment) @comment`},
	{Name: "strings", Description: "Interpreted and raw string literals, quotes included", Source: `[(interpreted_string_literal) (raw_string_literal)] @string`},
	{Name: "imports", Description: "Import paths, quotes included", Source: `(import_spec path: (interpreted_string_literal) @path)`},
	{Name: "function-names", Description: "Names of function declarations", Source: `(function_declaration name: (identifier) @name)`},
	{Name: "type-names", Description: "Names of type declarations", Source: `(type_spec name: (type_identifier) @name)`},
}

var hclQueries = []PreparedQuery{
	{Name: "comments", Description: "Comments (all styles)", Source: `(comment) @comment`},
	{Name: "strings", Description: "Literal parts of quoted strings", Source: `(string_lit (template_literal) @string)`},
	{Name: "attribute-names", Description: "Names of attributes", Source: `(attribute (identifier) @name)`},
}

var pythonQueries = []PreparedQuery{
	{Name: "comments", Description: "Comments", Source: `(comment) @comment`},
	{Name: "strings", Description: "Strings, quotes and prefixes included", Source: `(string) @string`},
	{Name: "function-names", Description: "Names of function definitions", Source: `(function_definition name: (identifier) @name)`},
	{Name: "class-names", Description: "Names of class definitions", Source: `(class_definition name: (identifier) @name)`},
	{Name: "imports", Description: "Imported module names", Source: `[(import_statement name: (dotted_name) @name) (import_from_statement module_name: (dotted_name) @name)]`},
}

var rustQueries = []PreparedQuery{
	{
		Name:        "comments",
		Description: "Comments (line and block styles, doc comments excluded, comment chars included)",
		Source: `
((line_comment) @comment (#not-match? @comment "^///"))
(block_comment) @comment`,
	},
	{Name: "doc-comments", Description: "Doc comments (comment chars included)", Source: `((line_comment) @comment (#match? @comment "^///"))`},
	{Name: "strings", Description: "Contents of string literals, quotes excluded", Source: `(string_content) @string`},
	{Name: "uses", Description: "Paths of use declarations", Source: `(use_declaration argument: (_) @use)`},
}

var typescriptQueries = []PreparedQuery{
	{Name: "comments", Description: "Comments", Source: `(comment) @comment`},
	{Name: "strings", Description: "Literal parts of strings", Source: `(string_fragment) @string`},
	{Name: "imports", Description: "Module specifiers of imports", Source: `(import_statement source: (string (string_fragment) @sf))`},
}
