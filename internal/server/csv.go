package server

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"adra/pkg/types"
)

// CSV exports use a fixed, declared column set per entity; quoting and
// quote doubling are handled by encoding/csv.

func writeBeneficiariesCSV(w io.Writer, beneficiaries []*types.Beneficiary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"ID", "Nome", "Documento", "Email", "Telefone", "Cidade/UF", "Status", "Criado em"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, b := range beneficiaries {
		document := ":"
		if b.Document != nil {
			document = fmt.Sprintf("%s:%s", b.Document.Type, b.Document.Value)
		}

		record := []string{
			b.ID,
			b.Name,
			document,
			b.Email,
			b.Phone,
			fmt.Sprintf("%s/%s", b.Address.City, b.Address.State),
			string(b.Status),
			b.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeDonationsCSV(w io.Writer, donations []*types.Donation) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"ID", "Doador", "Tipo", "Status", "Cidade/UF", "Itens", "Criado em"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, d := range donations {
		items := make([]string, 0, len(d.Items))
		for _, item := range d.Items {
			items = append(items, fmt.Sprintf("%s x%d", item.Name, item.Qty))
		}

		record := []string{
			d.ID,
			d.Donor.Name,
			d.Type,
			d.Status,
			fmt.Sprintf("%s/%s", d.Address.City, d.Address.State),
			strings.Join(items, "; "),
			d.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeNecessidadesCSV(w io.Writer, necessidades []*types.Necessidade) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"ID", "Nome", "Item", "Categoria", "Quantidade", "Unidade", "Prioridade", "Status", "Criado em"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, n := range necessidades {
		record := []string{
			n.ID,
			n.Nome,
			n.Item,
			n.Categoria,
			strconv.Itoa(n.Quantidade),
			n.Unidade,
			n.Prioridade,
			string(n.Status),
			n.CriadoEm.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
