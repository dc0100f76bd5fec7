package repository

import "github.com/google/uuid"

// validID indica se o ID pode ser comparado a uma coluna UUID; IDs fora do
// formato são tratados como inexistentes em vez de erro 22P02 do Postgres
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
