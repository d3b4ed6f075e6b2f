package service

import (
	"fmt"
	"strings"

	"kantinchat/internal/model"
)

// The formatter renders query results into fixed-shape Indonesian text.
// Its output doubles as the context handed to the language model and as
// the deterministic reply when the model is unavailable.

// FormatRupiah renders an amount with Indonesian thousands grouping,
// e.g. 15000 -> "15.000".
func FormatRupiah(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// FormatItemList renders one "<name> — Rp <price>" line per item.
func FormatItemList(items []model.MenuItem) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s — Rp %s", item.Name, FormatRupiah(item.Price))
	}
	return b.String()
}

// FormatItemDetail renders a multi-line block for a single item.
func FormatItemDetail(item model.MenuItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nHarga: Rp %s", item.Name, FormatRupiah(item.Price))
	if item.Description != nil && strings.TrimSpace(*item.Description) != "" {
		fmt.Fprintf(&b, "\n%s", strings.TrimSpace(*item.Description))
	}
	if item.IsAvailable {
		b.WriteString("\nStatus: tersedia")
	} else {
		b.WriteString("\nStatus: tidak tersedia")
	}
	if len(item.Categories) > 0 {
		fmt.Fprintf(&b, "\nKategori: %s", strings.Join(item.Categories, ", "))
	}
	if item.Sold > 0 {
		fmt.Fprintf(&b, "\nSudah terjual %d kali", item.Sold)
	}
	return b.String()
}

// FormatBundleList renders one "Paket N: food + drink = Rp total" line
// per bundle, 1-based.
func FormatBundleList(bundles []model.Bundle) string {
	var b strings.Builder
	for i, bundle := range bundles {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Paket %d: %s + %s = Rp %s",
			i+1, bundle.Food.Name, bundle.Drink.Name, FormatRupiah(bundle.Total))
	}
	return b.String()
}

// FormatKantinInfo renders a kantin's name, open/closed state and hours.
func FormatKantinInfo(k model.Kantin) string {
	var b strings.Builder
	b.WriteString(k.Name)
	if k.IsOpen {
		b.WriteString("\nStatus: buka")
	} else {
		b.WriteString("\nStatus: tutup")
	}
	if k.OpenTime != nil && k.CloseTime != nil {
		fmt.Fprintf(&b, "\nJam operasional: %s - %s", *k.OpenTime, *k.CloseTime)
	} else {
		b.WriteString("\nJam operasional belum tercatat")
	}
	return b.String()
}
