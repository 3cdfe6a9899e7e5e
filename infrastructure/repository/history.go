// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/oraculo-comercial-api/infrastructure/database/postgres"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
)

const (
	historyTable   = "oracle_history oh"
	historyColumns = "oh.id, oh.store_name, oh.tipo, oh.data_referencia, oh.dados, oh.created_at, oh.updated_at"
)

type HistoryRepository interface {
	SaveOrUpdate(storeName string, record *domain.HistoryRecord) error
	GetByID(id string) (*domain.HistoryRecord, error)
	ListByStore(storeName string, tipo domain.PeriodType) ([]domain.HistoryRecord, error)
	ListRecent(storeName string, tipo domain.PeriodType, limit uint64) ([]domain.HistoryRecord, error)
	ListAll() ([]domain.HistoryRecord, error)
	Delete(id string) error
}

type historyRepository struct {
	conn *postgres.Connection
}

func NewHistoryRepository(conn *postgres.Connection) HistoryRepository {
	return &historyRepository{
		conn: conn,
	}
}

// SaveOrUpdate insere o snapshot ou sobrescreve o registro existente quando a
// mesma chave composta (mesma loja + mesmo período) já foi salva antes
func (r *historyRepository) SaveOrUpdate(storeName string, record *domain.HistoryRecord) error {
	dados, err := json.Marshal(record.Dados)
	if err != nil {
		return fmt.Errorf("erro ao serializar snapshot: %w", err)
	}

	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert("oracle_history").
		Columns("id", "store_name", "tipo", "data_referencia", "dados").
		Values(record.ID, storeName, string(record.Tipo), record.DataReferencia, dados).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				store_name = EXCLUDED.store_name,
				data_referencia = EXCLUDED.data_referencia,
				dados = EXCLUDED.dados,
				updated_at = CURRENT_TIMESTAMP
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao salvar snapshot: %w", err)
	}

	return nil
}

func (r *historyRepository) GetByID(id string) (*domain.HistoryRecord, error) {
	sqlQuery, args, err := squirrel.
		Select(historyColumns).
		From(historyTable).
		Where(squirrel.Eq{"oh.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(sqlQuery, args...)
	record, err := r.scanHistoryRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	return record, nil
}

// ListByStore retorna os snapshots da loja na granularidade pedida, em ordem
// cronológica crescente
func (r *historyRepository) ListByStore(storeName string, tipo domain.PeriodType) ([]domain.HistoryRecord, error) {
	return r.list(squirrel.
		Select(historyColumns).
		From(historyTable).
		Where(squirrel.Eq{"oh.store_name": storeName, "oh.tipo": string(tipo)}).
		OrderBy("oh.data_referencia ASC").
		PlaceholderFormat(squirrel.Dollar))
}

// ListRecent retorna os snapshots mais recentes da loja na granularidade, do
// mais novo para o mais antigo, limitados à janela pedida
func (r *historyRepository) ListRecent(storeName string, tipo domain.PeriodType, limit uint64) ([]domain.HistoryRecord, error) {
	return r.list(squirrel.
		Select(historyColumns).
		From(historyTable).
		Where(squirrel.Eq{"oh.store_name": storeName, "oh.tipo": string(tipo)}).
		OrderBy("oh.data_referencia DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar))
}

func (r *historyRepository) ListAll() ([]domain.HistoryRecord, error) {
	return r.list(squirrel.
		Select(historyColumns).
		From(historyTable).
		OrderBy("oh.store_name ASC", "oh.data_referencia ASC").
		PlaceholderFormat(squirrel.Dollar))
}

func (r *historyRepository) Delete(id string) error {
	sqlQuery, args, err := squirrel.
		Delete("oracle_history").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de remoção: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover snapshot: %w", err)
	}

	return nil
}

func (r *historyRepository) list(builder squirrel.SelectBuilder) ([]domain.HistoryRecord, error) {
	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []domain.HistoryRecord{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.HistoryRecord, 0)
	for rows.Next() {
		record, err := r.scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
		}
		records = append(records, *record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *historyRepository) scanHistory(rows *sql.Rows) (*domain.HistoryRecord, error) {
	record := &domain.HistoryRecord{}
	var storeName string
	var dados []byte

	err := rows.Scan(
		&record.ID,
		&storeName,
		&record.Tipo,
		&record.DataReferencia,
		&dados,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(dados, &record.Dados); err != nil {
		return nil, fmt.Errorf("erro ao desserializar snapshot %s: %w", record.ID, err)
	}

	return record, nil
}

func (r *historyRepository) scanHistoryRow(row *sql.Row) (*domain.HistoryRecord, error) {
	record := &domain.HistoryRecord{}
	var storeName string
	var dados []byte

	err := row.Scan(
		&record.ID,
		&storeName,
		&record.Tipo,
		&record.DataReferencia,
		&dados,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(dados, &record.Dados); err != nil {
		return nil, fmt.Errorf("erro ao desserializar snapshot %s: %w", record.ID, err)
	}

	return record, nil
}
