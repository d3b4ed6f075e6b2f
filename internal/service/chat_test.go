package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"kantinchat/internal/model"
)

func newTestChatService(store *fakeStore, ai AIClient) *ChatService {
	extractor := NewIntentExtractor(nil)
	combo := NewComboService(store, 20, 3)
	summarizer := NewSummarizer(ai, time.Second)
	return NewChatService(store, extractor, combo, summarizer)
}

func TestHandleRecommendUnderBudgetScenario(t *testing.T) {
	// a Rp12.000 iced tea and a more popular Rp18.000 iced coffee, both
	// drinks, under a 20k budget
	store := &fakeStore{items: []model.MenuItem{
		newItem(1, testKantinID, "Es Teh Manis", 12000, 40, CategoryMinuman),
		newItem(2, testKantinID, "Es Kopi", 18000, 90, CategoryMinuman),
		newItem(3, testKantinID, "Nasi Goreng", 15000, 120, CategoryMakanSiang),
	}}
	svc := newTestChatService(store, nil)

	resp := svc.Handle(context.Background(), "rekomendasi minuman dingin budget 20k", testKantinID)

	if resp.Intent != model.IntentRecommendBudget {
		t.Fatalf("intent = %s, want RECOMMEND_BUDGET", resp.Intent)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("got %d items, want the 2 drinks: %+v", len(resp.Items), resp.Items)
	}
	if resp.Items[0].Name != "Es Kopi" || resp.Items[1].Name != "Es Teh Manis" {
		t.Errorf("order = %s, %s; want most popular first", resp.Items[0].Name, resp.Items[1].Name)
	}
	if resp.Reply == "" {
		t.Error("reply must never be empty")
	}
	if resp.Debug.ResultCount != 2 {
		t.Errorf("debug result count = %d, want 2", resp.Debug.ResultCount)
	}
}

func TestHandleBundleScenario(t *testing.T) {
	store := &fakeStore{items: []model.MenuItem{
		newItem(1, testKantinID, "Nasi Goreng", 10000, 40, CategoryMakanSiang),
		newItem(2, testKantinID, "Es Teh", 5000, 80, CategoryMinuman),
	}}
	svc := newTestChatService(store, nil)

	resp := svc.Handle(context.Background(), "mau nasi goreng sama es teh budget 15000", testKantinID)

	if resp.Intent != model.IntentBundleRecommend {
		t.Fatalf("intent = %s, want BUNDLE_RECOMMEND", resp.Intent)
	}
	if len(resp.Bundles) != 1 {
		t.Fatalf("got %d bundles, want 1", len(resp.Bundles))
	}
	if resp.Bundles[0].Total != 15000 || resp.Bundles[0].Remainder != 0 {
		t.Errorf("bundle total=%d sisa=%d, want 15000 and 0", resp.Bundles[0].Total, resp.Bundles[0].Remainder)
	}
	if !strings.Contains(resp.Reply, "Paket 1") {
		t.Errorf("deterministic bundle reply expected, got %q", resp.Reply)
	}
}

func TestHandleBundleWithoutBudgetAsksForOne(t *testing.T) {
	store := &fakeStore{items: testMenuItems()}
	svc := newTestChatService(store, nil)

	resp := svc.Handle(context.Background(), "paket makan siang dong", testKantinID)

	if resp.Intent != model.IntentBundleRecommend {
		t.Fatalf("intent = %s, want BUNDLE_RECOMMEND", resp.Intent)
	}
	if len(resp.Bundles) != 0 {
		t.Errorf("no budget given, want no bundles")
	}
	if !strings.Contains(resp.Reply, "budget") {
		t.Errorf("reply should ask for a budget, got %q", resp.Reply)
	}
}

func TestHandleOutOfScope(t *testing.T) {
	store := &fakeStore{items: testMenuItems()}
	svc := newTestChatService(store, nil)

	resp := svc.Handle(context.Background(), "siapa presiden sekarang", "")

	if resp.Intent != model.IntentOutOfScope {
		t.Fatalf("intent = %s, want OUT_OF_SCOPE", resp.Intent)
	}
	if resp.Reply != OutOfScopeReply {
		t.Errorf("reply = %q, want the fixed template", resp.Reply)
	}
}

func TestHandleStoreFailureStillReplies(t *testing.T) {
	store := &fakeStore{failSearch: true}
	svc := newTestChatService(store, nil)

	resp := svc.Handle(context.Background(), "cari mie ayam", testKantinID)

	if resp.Reply == "" {
		t.Fatal("store failure must still produce a reply")
	}
	if strings.Contains(resp.Reply, "error") || strings.Contains(resp.Reply, "Error") {
		t.Errorf("reply leaks failure wording: %q", resp.Reply)
	}
	if len(resp.Items) != 0 {
		t.Errorf("failed store read should behave as an empty result")
	}
}

func TestHandleKantinInfo(t *testing.T) {
	open, closeTime := "07:00", "16:00"
	store := &fakeStore{kantin: &model.Kantin{
		ID: testKantinID, Name: "Kantin Bu Sri", IsOpen: true,
		OpenTime: &open, CloseTime: &closeTime, Status: model.KantinStatusActive,
	}}
	svc := newTestChatService(store, nil)

	resp := svc.Handle(context.Background(), "jam buka kantin?", testKantinID)

	if resp.Intent != model.IntentAskKantinInfo {
		t.Fatalf("intent = %s, want ASK_KANTIN_INFO", resp.Intent)
	}
	if resp.Kantin == nil || resp.Kantin.Name != "Kantin Bu Sri" {
		t.Fatalf("kantin missing from response: %+v", resp.Kantin)
	}
	if !strings.Contains(resp.Reply, "07:00 - 16:00") {
		t.Errorf("reply should carry the hours, got %q", resp.Reply)
	}
}

func TestHandleKantinInfoWithoutScope(t *testing.T) {
	store := &fakeStore{}
	svc := newTestChatService(store, nil)

	resp := svc.Handle(context.Background(), "jam buka kantin?", "")

	if resp.Kantin != nil {
		t.Errorf("cross-kantin hours question cannot resolve a kantin")
	}
	if resp.Reply == "" {
		t.Error("reply must never be empty")
	}
}

func TestHandleItemInfo(t *testing.T) {
	store := &fakeStore{items: testMenuItems()}
	svc := newTestChatService(store, nil)

	resp := svc.Handle(context.Background(), "harga nasi goreng?", testKantinID)

	if resp.Intent != model.IntentAskItemInfo {
		t.Fatalf("intent = %s, want ASK_ITEM_INFO", resp.Intent)
	}
	if len(resp.Items) != 1 || resp.Items[0].Name != "Nasi Goreng" {
		t.Fatalf("items = %+v, want just Nasi Goreng", resp.Items)
	}
	if !strings.Contains(resp.Reply, "12.000") {
		t.Errorf("reply should carry the price, got %q", resp.Reply)
	}
}
