package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"kantinchat/internal/model"
	"kantinchat/internal/utils"
)

// OutOfScopeReply is the fixed rejection for messages outside the menu
// domain. Callers must return it byte-for-byte.
const OutOfScopeReply = "Aku khusus bantu soal menu kantin (makanan/minuman, harga, rekomendasi, jam buka). Mau cari menu apa atau budget berapa?"

const summaryPrompt = "Kamu asisten menu kantin yang ramah. Jawab dalam bahasa Indonesia santai, maksimal 3-4 kalimat. " +
	"Gunakan HANYA data di konteks; jangan mengarang menu, harga, atau info lain yang tidak ada di konteks. " +
	"Jangan pakai format markdown, tulis teks polos saja."

// QueryResult is whatever the query step produced for one message. At most
// one of the three shapes is populated, depending on the intent.
type QueryResult struct {
	Items   []model.MenuItem
	Bundles []model.Bundle
	Kantin  *model.Kantin
}

// Empty reports whether the query produced nothing to talk about.
func (r QueryResult) Empty() bool {
	return len(r.Items) == 0 && len(r.Bundles) == 0 && r.Kantin == nil
}

// Count returns the number of result entries, for the debug block.
func (r QueryResult) Count() int {
	if r.Kantin != nil {
		return 1
	}
	if len(r.Bundles) > 0 {
		return len(r.Bundles)
	}
	return len(r.Items)
}

// Summarizer produces the final natural-language reply. It never returns
// an empty string and never surfaces a model or formatting problem.
type Summarizer struct {
	ai      AIClient
	timeout time.Duration
}

// NewSummarizer creates a summarizer. The timeout bounds each model call;
// on expiry the deterministic rendering is returned instead.
func NewSummarizer(ai AIClient, timeout time.Duration) *Summarizer {
	return &Summarizer{ai: ai, timeout: timeout}
}

// Respond turns a query result into the reply text for the user.
func (s *Summarizer) Respond(ctx context.Context, message string, intent model.Intent, result QueryResult, budget *int64, categories []string) string {
	if intent == model.IntentOutOfScope {
		return OutOfScopeReply
	}
	if result.Empty() {
		return utils.StripMarkup(s.fallbackReply(intent, budget, categories))
	}

	rendered := s.renderContext(intent, result)
	reply := s.summarize(ctx, message, rendered)
	if strings.TrimSpace(reply) == "" {
		reply = rendered
	}
	reply = utils.StripMarkup(reply)
	if strings.TrimSpace(reply) == "" {
		// formatter output stripped to nothing should not happen; keep the
		// non-empty guarantee anyway
		reply = s.fallbackReply(intent, budget, categories)
	}
	return reply
}

// summarize makes the single model call, or returns the rendered context
// untouched when the model is disabled or fails.
func (s *Summarizer) summarize(ctx context.Context, message, rendered string) string {
	if s.ai == nil || !s.ai.IsEnabled() {
		return rendered
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user := fmt.Sprintf("Pesan pengguna: %s\n\nData dari menu:\n%s", message, rendered)
	out, err := s.ai.Complete(callCtx, summaryPrompt, user)
	if err != nil {
		log.Printf("Warning: chat model call failed, using formatter output: %v", err)
		return rendered
	}
	if strings.TrimSpace(out) == "" {
		return rendered
	}
	return out
}

func (s *Summarizer) renderContext(intent model.Intent, result QueryResult) string {
	switch {
	case result.Kantin != nil:
		return FormatKantinInfo(*result.Kantin)
	case len(result.Bundles) > 0:
		return FormatBundleList(result.Bundles)
	case intent == model.IntentAskItemInfo && len(result.Items) == 1:
		return FormatItemDetail(result.Items[0])
	default:
		return FormatItemList(result.Items)
	}
}

// fallbackReply is the deterministic text for empty results, keyed by
// intent. Every branch returns non-empty text.
func (s *Summarizer) fallbackReply(intent model.Intent, budget *int64, categories []string) string {
	switch intent {
	case model.IntentRecommendBudget, model.IntentBundleRecommend:
		if budget != nil {
			return fmt.Sprintf("Belum ada menu yang pas di budget Rp %s. Coba naikkan budgetnya sedikit ya.", FormatRupiah(*budget))
		}
		return "Belum ketemu menu yang cocok. Coba sebutkan budget kamu, misalnya 15k."
	case model.IntentSearch:
		if len(categories) > 0 {
			return fmt.Sprintf("Belum ketemu menu untuk kategori %s. Coba kata kunci atau kategori lain ya.", strings.Join(categories, ", "))
		}
		return "Belum ketemu menu yang cocok. Coba kata kunci lain ya."
	case model.IntentAskItemInfo:
		return "Menu itu belum ketemu di daftar. Coba cek penulisan namanya atau tanya menu lain ya."
	case model.IntentAskKantinInfo:
		return "Info kantinnya belum tersedia saat ini."
	default:
		return OutOfScopeReply
	}
}
