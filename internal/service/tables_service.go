package service

import (
	"context"

	"socialhub/internal/repository"
)

type Stats struct {
	Tables int            `json:"tables"`
	Rows   map[string]int `json:"rows"`
}

type TablesService interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

func (t *tablesService) GetStats(ctx context.Context) (*Stats, error) {
	countTables, err := t.tablesRepo.CountTablesDB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := t.tablesRepo.CountRows(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{Tables: countTables, Rows: rows}, nil
}
