package interpreter

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"wordlang/interpreter-go/pkg/ast"
	"wordlang/interpreter-go/pkg/runtime"
)

// Interpreter walks wordLang ASTs. It owns no variable state of its own:
// the environment is passed to every Interpret and Evaluate call.
type Interpreter struct {
	out io.Writer
	log logrus.FieldLogger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput directs Print statements to w.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.out = w
		}
	}
}

// WithLogger sets the logger used for statement tracing.
func WithLogger(log logrus.FieldLogger) Option {
	return func(i *Interpreter) {
		if log != nil {
			i.log = log
		}
	}
}

// New returns an interpreter printing to stdout with logging discarded.
func New(opts ...Option) *Interpreter {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	i := &Interpreter{out: os.Stdout, log: quiet}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run executes program against a fresh environment and returns it. On error
// the environment reflects every statement completed before the failure.
func (i *Interpreter) Run(program *ast.Program) (*runtime.Environment, error) {
	env := runtime.NewEnvironment()
	if program == nil {
		return env, runtimeError(ErrUnexpectedNode, "nil program")
	}
	i.log.WithField("statements", len(program.Body)).Debug("evaluating program")
	err := i.Interpret(program, env)
	i.log.WithField("bindings", env.Snapshot()).Debug("program finished")
	return env, err
}
