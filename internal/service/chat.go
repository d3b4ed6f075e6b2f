package service

import (
	"context"
	"log"
	"time"

	"kantinchat/internal/model"
)

// ChatService runs the whole pipeline for one message: intent extraction,
// the store query for that intent, and summarization. Each call is
// stateless; conversation history, if any, is the caller's concern.
type ChatService struct {
	store      MenuStore
	extractor  *IntentExtractor
	combo      *ComboService
	summarizer *Summarizer
}

// NewChatService creates a new chat service
func NewChatService(store MenuStore, extractor *IntentExtractor, combo *ComboService, summarizer *Summarizer) *ChatService {
	return &ChatService{
		store:      store,
		extractor:  extractor,
		combo:      combo,
		summarizer: summarizer,
	}
}

// Handle processes one chat message end to end. It always produces a
// response with a non-empty reply; store and model failures degrade to
// deterministic text instead of surfacing.
func (s *ChatService) Handle(ctx context.Context, message, kantinID string) *model.ChatResponse {
	start := time.Now()

	intent := s.extractor.Extract(message, kantinID)
	result := s.query(ctx, intent)
	reply := s.summarizer.Respond(ctx, message, intent.Intent, result, intent.Budget, intent.Categories)

	return &model.ChatResponse{
		Reply:   reply,
		Intent:  intent.Intent,
		Items:   result.Items,
		Bundles: result.Bundles,
		Kantin:  result.Kantin,
		Debug: model.ChatDebug{
			ResultCount: result.Count(),
			KantinID:    intent.KantinID,
			Took:        time.Since(start).Milliseconds(),
		},
	}
}

// query runs the read operation matching the intent. A failed store read
// is logged and treated as an empty result so the pipeline still reaches
// a fallback reply.
func (s *ChatService) query(ctx context.Context, intent model.ExtractedIntent) QueryResult {
	switch intent.Intent {
	case model.IntentAskKantinInfo:
		if intent.KantinID == "" {
			return QueryResult{}
		}
		kantin, err := s.store.GetKantin(ctx, intent.KantinID)
		if err != nil {
			log.Printf("Warning: kantin lookup failed: %v", err)
			return QueryResult{}
		}
		return QueryResult{Kantin: kantin}

	case model.IntentAskItemInfo:
		if intent.MenuName == "" {
			return QueryResult{}
		}
		items, err := s.store.FindItemsByName(ctx, intent.KantinID, intent.MenuName, intent.Limit)
		if err != nil {
			log.Printf("Warning: item lookup failed: %v", err)
			return QueryResult{}
		}
		return QueryResult{Items: items}

	case model.IntentSearch:
		items, err := s.store.SearchItems(ctx, intent.KantinID, model.ItemFilter{
			Keyword:    intent.Keyword,
			Categories: intent.Categories,
		}, intent.Limit)
		if err != nil {
			log.Printf("Warning: menu search failed: %v", err)
			return QueryResult{}
		}
		return QueryResult{Items: items}

	case model.IntentRecommendBudget:
		if intent.Budget == nil {
			items, err := s.store.SearchItems(ctx, intent.KantinID, model.ItemFilter{Categories: intent.Categories}, intent.Limit)
			if err != nil {
				log.Printf("Warning: recommendation search failed: %v", err)
				return QueryResult{}
			}
			return QueryResult{Items: items}
		}
		items, err := s.store.RecommendUnderBudget(ctx, intent.KantinID, *intent.Budget, intent.Categories, intent.Limit)
		if err != nil {
			log.Printf("Warning: budget recommendation failed: %v", err)
			return QueryResult{}
		}
		return QueryResult{Items: items}

	case model.IntentBundleRecommend:
		if intent.Budget == nil {
			return QueryResult{}
		}
		bundles, err := s.combo.RecommendBundles(ctx, intent.KantinID, *intent.Budget, intent.Categories)
		if err != nil {
			log.Printf("Warning: bundle recommendation failed: %v", err)
			return QueryResult{}
		}
		return QueryResult{Bundles: bundles}

	default:
		return QueryResult{}
	}
}
