// Package etl loads the enriched ANS expense file into PostgreSQL: it parses
// the CSV, aggregates it per operator and state, and replaces the expense
// tables in one transaction.
package etl

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/intuitive-care/operadoras-api/internal/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

// UnknownRazaoSocial is written by the enrichment step for registrations
// missing from the active operators registry.
const UnknownRazaoSocial = "OPERADORA DESCONHECIDA/INATIVA"

var enrichedHeader = []string{
	"REG_ANS", "CNPJ", "RazaoSocial", "Modalidade", "UF",
	"Trimestre", "Ano", "Valor", "Descricao", "CNPJ_Valido",
}

// ErrUnexpectedHeader is returned when the first line is not the enriched header
var ErrUnexpectedHeader = errors.New("unexpected enriched CSV header")

// Record is one expense line of the enriched file
type Record struct {
	RegistroANS string
	CNPJ        string
	RazaoSocial string
	Modalidade  string
	UF          string
	Trimestre   int
	Ano         int
	Valor       decimal.Decimal
	Descricao   string
	CNPJValido  bool
}

// Known reports whether the line belongs to an operator of the active registry
func (r Record) Known() bool {
	return r.CNPJ != "" && r.RazaoSocial != UnknownRazaoSocial
}

// ReadStats counts what ReadEnrichedCSV accepted and skipped
type ReadStats struct {
	Rows    int
	Skipped int
}

// Latin1Reader decodes ISO-8859-1 input, the encoding of the files ANS publishes.
func Latin1Reader(r io.Reader) io.Reader {
	return charmap.ISO8859_1.NewDecoder().Reader(r)
}

// ReadEnrichedCSV parses the ";"-separated enriched file. Lines with too few
// fields or an unparseable quarter, year or value are skipped and counted.
func ReadEnrichedCSV(r io.Reader) ([]Record, ReadStats, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ReadStats{}, fmt.Errorf("%w: empty input", ErrUnexpectedHeader)
	}
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, ReadStats{}, err
	}

	var (
		records []Record
		stats   ReadStats
	)
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				stats.Skipped++
				continue
			}
			return nil, stats, fmt.Errorf("read line %d: %w", stats.Rows+stats.Skipped+2, err)
		}

		record, ok := parseRecord(fields)
		if !ok {
			stats.Skipped++
			continue
		}
		records = append(records, record)
		stats.Rows++
	}
	return records, stats, nil
}

func checkHeader(header []string) error {
	if len(header) < len(enrichedHeader) {
		return fmt.Errorf("%w: %v", ErrUnexpectedHeader, header)
	}
	for i, want := range enrichedHeader {
		got := strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
		if !strings.EqualFold(got, want) {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrUnexpectedHeader, i+1, got, want)
		}
	}
	return nil
}

func parseRecord(fields []string) (Record, bool) {
	if len(fields) < len(enrichedHeader) {
		return Record{}, false
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	trimestre, ok := parseTrimestre(fields[5])
	if !ok {
		return Record{}, false
	}
	ano, err := strconv.Atoi(fields[6])
	if err != nil || ano < 1900 {
		return Record{}, false
	}
	valor, err := decimal.NewFromString(fields[7])
	if err != nil {
		return Record{}, false
	}

	cnpj := utils.NormalizeCNPJ(fields[1])
	valido, err := strconv.ParseBool(fields[9])
	if err != nil {
		valido = utils.ValidateCNPJ(cnpj)
	}

	return Record{
		RegistroANS: fields[0],
		CNPJ:        cnpj,
		RazaoSocial: fields[2],
		Modalidade:  fields[3],
		UF:          strings.ToUpper(fields[4]),
		Trimestre:   trimestre,
		Ano:         ano,
		Valor:       valor,
		Descricao:   fields[8],
		CNPJValido:  valido,
	}, true
}

// parseTrimestre accepts "3", "03" and the "3T" form taken from ANS file names.
func parseTrimestre(s string) (int, bool) {
	s = strings.TrimSuffix(strings.ToUpper(s), "T")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 4 {
		return 0, false
	}
	return n, true
}
