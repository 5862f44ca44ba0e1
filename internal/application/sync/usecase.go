package sync

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/repository"
)

// ProductSyncUseCase é a passada de reconciliação: detecta produtos
// conhecidos localmente que não existem no armazenamento autoritativo
// (resultado de uma escrita anterior que falhou) e re-submete o create.
// Insert-only: nunca atualiza nem resolve conflito de campo.
type ProductSyncUseCase struct {
	productRepo repository.ProductRepository
	log         zerolog.Logger
}

// NewProductSyncUseCase constrói o caso de uso.
func NewProductSyncUseCase(productRepo repository.ProductRepository, log zerolog.Logger) *ProductSyncUseCase {
	return &ProductSyncUseCase{productRepo: productRepo, log: log}
}

// Sync compara os ids locais com o conjunto remoto e re-insere os
// ausentes. A idempotência vem da guarda por insert: a presença do id é
// re-checada imediatamente antes de CADA insert, não uma vez para o
// lote inteiro — outro processo pode ter inserido no meio da passada.
func (uc *ProductSyncUseCase) Sync(ctx context.Context, local []entity.Product) (*dto.SyncResultResponse, error) {
	remoteIDs, err := uc.productRepo.ListIDs()
	if err != nil {
		return nil, fmt.Errorf("listar ids remotos: %w", err)
	}

	result := &dto.SyncResultResponse{Checked: len(local)}
	for i := range local {
		p := local[i]
		if p.ID == "" {
			continue
		}
		if _, ok := remoteIDs[p.ID]; ok {
			result.Skipped++
			continue
		}
		// Guarda imediatamente antes do insert: o id pode ter surgido
		// remotamente depois da listagem do lote.
		exists, err := uc.productRepo.Exists(p.ID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.ID, err))
			continue
		}
		if exists {
			result.Skipped++
			continue
		}
		if err := uc.productRepo.Create(&p); err != nil {
			uc.log.Error().Err(err).Str("product_id", p.ID).Msg("sync: re-insert falhou")
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.ID, err))
			continue
		}
		uc.log.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("sync: produto re-enviado")
		result.Pushed++
	}
	return result, nil
}
