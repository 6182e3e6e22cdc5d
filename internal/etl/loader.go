package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/intuitive-care/operadoras-api/internal/logging"
	"github.com/intuitive-care/operadoras-api/internal/models"
	"github.com/intuitive-care/operadoras-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultBatchSize = 1000

// LoadResult counts the rows written by a load
type LoadResult struct {
	Operadoras     int
	Despesas       int
	Agregadas      int
	SkippedUnknown int
}

// Loader writes parsed records into the API tables
type Loader struct {
	db        *gorm.DB
	logger    *logging.SafeLogger
	batchSize int
	now       func() time.Time
}

// NewLoader creates a loader writing through db
func NewLoader(db *gorm.DB, logger *logging.SafeLogger) *Loader {
	return &Loader{db: db, logger: logger, batchSize: defaultBatchSize, now: time.Now}
}

// Load upserts the known operators and replaces both expense tables in a
// single transaction. Detailed lines of unknown operators are not stored, as
// despesas_detalhadas references operadoras; they still count in aggregates.
func (l *Loader) Load(ctx context.Context, records []Record, aggregates []models.DespesaAgregada) (result LoadResult, err error) {
	ctx, span := utils.TraceDatabaseTransaction(ctx, "etl_load")
	defer span.End()

	loadedAt := l.now().UTC().Truncate(time.Second)
	operadoras, despesas, skipped := split(records, loadedAt)

	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(operadoras) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "registro_ans"}},
				DoUpdates: clause.AssignmentColumns([]string{"cnpj", "razao_social", "modalidade", "uf"}),
			}).CreateInBatches(operadoras, l.batchSize).Error
			if err != nil {
				return fmt.Errorf("upsert operadoras: %w", err)
			}
		}

		if err := tx.Where("1 = 1").Delete(&models.DespesaDetalhada{}).Error; err != nil {
			return fmt.Errorf("clear despesas_detalhadas: %w", err)
		}
		if len(despesas) > 0 {
			if err := tx.CreateInBatches(despesas, l.batchSize).Error; err != nil {
				return fmt.Errorf("insert despesas_detalhadas: %w", err)
			}
		}

		if err := tx.Where("1 = 1").Delete(&models.DespesaAgregada{}).Error; err != nil {
			return fmt.Errorf("clear despesas_agregadas: %w", err)
		}
		if len(aggregates) > 0 {
			if err := tx.CreateInBatches(aggregates, l.batchSize).Error; err != nil {
				return fmt.Errorf("insert despesas_agregadas: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"records": len(records)})
		l.logger.Error("etl load failed, transaction rolled back", zap.Error(err))
		return LoadResult{}, err
	}

	result = LoadResult{
		Operadoras:     len(operadoras),
		Despesas:       len(despesas),
		Agregadas:      len(aggregates),
		SkippedUnknown: skipped,
	}
	utils.AddSpanAttribute(span, "despesas", result.Despesas)
	l.logger.Info("etl load committed",
		zap.Int("operadoras", result.Operadoras),
		zap.Int("despesas", result.Despesas),
		zap.Int("agregadas", result.Agregadas),
		zap.Int("skipped_unknown", result.SkippedUnknown),
		zap.Time("data_carga", loadedAt))
	return result, nil
}

// split derives the operator rows (last line wins per registration) and the
// detailed expense rows of known operators.
func split(records []Record, loadedAt time.Time) ([]models.Operadora, []models.DespesaDetalhada, int) {
	index := make(map[string]int)
	var (
		operadoras []models.Operadora
		despesas   []models.DespesaDetalhada
		skipped    int
	)
	for _, r := range records {
		if !r.Known() {
			skipped++
			continue
		}
		op := models.Operadora{
			RegistroANS: r.RegistroANS,
			CNPJ:        r.CNPJ,
			RazaoSocial: r.RazaoSocial,
			Modalidade:  r.Modalidade,
			UF:          r.UF,
		}
		if i, ok := index[r.RegistroANS]; ok {
			operadoras[i] = op
		} else {
			index[r.RegistroANS] = len(operadoras)
			operadoras = append(operadoras, op)
		}
		despesas = append(despesas, models.DespesaDetalhada{
			RegistroANS: r.RegistroANS,
			Trimestre:   r.Trimestre,
			Ano:         r.Ano,
			Valor:       r.Valor,
			Descricao:   r.Descricao,
			DataCarga:   loadedAt,
		})
	}
	return operadoras, despesas, skipped
}
