package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound        = errors.New("recurso não encontrado")
	ErrValidation      = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrConflict        = errors.New("conflito com o estado atual")
	ErrBusy            = errors.New("outra operação em andamento na sessão")
	ErrUserNotFound    = errors.New("usuário não encontrado")
	ErrUnauthorized    = errors.New("não autorizado")
	ErrForbidden       = errors.New("acesso negado")
	ErrUnknownMovement = errors.New("tipo de movimento desconhecido")
)

// PersistError descreve a falha de uma leitura ou escrita remota.
// Partial indica que a operação já havia gravado algo antes de falhar:
// é exatamente o caso que a reconciliação (sync) existe para reparar.
// Operações transacionais (TxRunner) sempre reportam Partial=false,
// porque o rollback desfaz os passos anteriores.
type PersistError struct {
	Op      string // operação de alto nível (ex.: "create_sale")
	Step    string // passo que falhou (ex.: "insert_items")
	Partial bool
	Err     error
}

func (e *PersistError) Error() string {
	if e.Partial {
		return fmt.Sprintf("%s: falha em %s (escrita parcial): %v", e.Op, e.Step, e.Err)
	}
	return fmt.Sprintf("%s: falha em %s (nada gravado): %v", e.Op, e.Step, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// NewPersistError monta um PersistError embrulhando a causa.
func NewPersistError(op, step string, partial bool, err error) *PersistError {
	return &PersistError{Op: op, Step: step, Partial: partial, Err: err}
}
