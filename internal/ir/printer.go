package ir

import (
	"fmt"
	"strings"

	"solir/internal/ast"
)

// FunctionIR pairs a function with its operations in lowering order.
type FunctionIR struct {
	Function   *ast.Function
	Operations []Operation
}

// ContractIR groups the lowered functions of one contract.
type ContractIR struct {
	Contract  *ast.Contract
	Functions []*FunctionIR
}

// Printer provides pretty-printing for operation listings
type Printer struct {
	indent int
	output strings.Builder
}

// NewPrinter creates a new listing printer
func NewPrinter() *Printer {
	return &Printer{}
}

// Listing returns the rendered listing of the given contracts.
func Listing(contracts ...*ContractIR) string {
	p := NewPrinter()
	for _, contract := range contracts {
		p.PrintContract(contract)
	}
	return p.String()
}

func (p *Printer) String() string { return p.output.String() }

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

// PrintContract renders one contract's lowered functions.
func (p *Printer) PrintContract(contract *ContractIR) {
	p.writeLine("CONTRACT %s", contract.Contract.Name)
	p.indent++
	for _, fn := range contract.Functions {
		p.PrintFunction(fn)
	}
	p.indent--
}

// PrintFunction renders one function's operation listing, one operation
// per line.
func (p *Printer) PrintFunction(fn *FunctionIR) {
	p.writeLine("FUNCTION %s", canonicalSignature(fn.Function))
	if len(fn.Operations) == 0 {
		return
	}
	p.indent++
	p.writeLine("IRs:")
	p.indent++
	for _, op := range fn.Operations {
		p.writeLine("%s", op)
	}
	p.indent -= 2
}

// canonicalSignature is the contract-qualified signature, Vault.withdraw(uint256).
func canonicalSignature(f *ast.Function) string {
	if f.Contract != nil {
		return f.Contract.Name + "." + f.Signature()
	}
	return f.Signature()
}
