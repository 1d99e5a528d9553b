// Package compiler provides a single-pass translator for TruPL, a small
// Pascal-like teaching language, targeting TrAL assembly text.
//
// Pipeline: TruPL source → Lexer (token stream) → Translator → TrAL text
//
// The Translator is a predictive recursive-descent parser with one token of
// lookahead. Type checking, register allocation and emission all happen while
// parsing; no syntax tree is built.
package compiler
