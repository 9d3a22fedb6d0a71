package sales_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/ports"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/criteria"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doble de persistencia en memoria: implementa todos los puertos y un
// TxRunner con snapshot/restore para reproducir el todo-o-nada de una
// transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type storedNotice struct {
	notice     entity.Notification
	recipients []int64
}

type fakeStore struct {
	seq int64

	prices        map[int64]*entity.Price
	lots          map[int64]*entity.StockLot
	deliveries    []*entity.StockDelivery
	thresholds    []*entity.StockThreshold
	sales         map[int64]*entity.Sale
	payments      map[int64]*entity.Payment
	users         map[int64]*entity.User
	clients       map[int64]*entity.Client
	notices       map[int64]*storedNotice
	movements     []*entity.MovementRecord
	cashSessions  []*entity.CashSession
	cashLinks     map[int64]int64 // venta -> sesión
	goals         map[string]decimal.Decimal
	products      map[int64]*entity.Product
	presentations map[int64]*entity.Presentation

	// beforeClaim permite simular una venta concurrente que gana el
	// reclamo entre la validación y el update condicional.
	beforeClaim func(s *fakeStore)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		prices:        map[int64]*entity.Price{},
		lots:          map[int64]*entity.StockLot{},
		sales:         map[int64]*entity.Sale{},
		payments:      map[int64]*entity.Payment{},
		users:         map[int64]*entity.User{},
		clients:       map[int64]*entity.Client{},
		notices:       map[int64]*storedNotice{},
		cashLinks:     map[int64]int64{},
		goals:         map[string]decimal.Decimal{},
		products:      map[int64]*entity.Product{},
		presentations: map[int64]*entity.Presentation{},
	}
}

func (s *fakeStore) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *fakeStore) repos() ports.Repos {
	return ports.Repos{
		Prices:        &fakePriceRepo{s},
		Lots:          &fakeLotRepo{s},
		Deliveries:    &fakeDeliveryRepo{s},
		Thresholds:    &fakeThresholdRepo{s},
		Sales:         &fakeSaleRepo{s},
		Payments:      &fakePaymentRepo{s},
		Users:         &fakeUserRepo{s},
		Clients:       &fakeClientRepo{s},
		Notifications: &fakeNoticeRepo{s},
		Movements:     &fakeMovementRepo{s},
		Cash:          &fakeCashRepo{s},
		Goals:         &fakeGoalRepo{s},
		Products:      &fakeProductRepo{s},
	}
}

// ── snapshot / restore ────────────────────────────────────────────────────────

type storeSnapshot struct {
	seq           int64
	prices        map[int64]entity.Price
	lots          map[int64]entity.StockLot
	deliveries    []entity.StockDelivery
	sales         map[int64]entity.Sale
	payments      map[int64]entity.Payment
	clients       map[int64]entity.Client
	notices       map[int64]storedNotice
	movements     []entity.MovementRecord
	cashLinks     map[int64]int64
	goals         map[string]decimal.Decimal
}

func (s *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		seq:       s.seq,
		prices:    map[int64]entity.Price{},
		lots:      map[int64]entity.StockLot{},
		sales:     map[int64]entity.Sale{},
		payments:  map[int64]entity.Payment{},
		clients:   map[int64]entity.Client{},
		notices:   map[int64]storedNotice{},
		cashLinks: map[int64]int64{},
		goals:     map[string]decimal.Decimal{},
	}
	for id, p := range s.prices {
		snap.prices[id] = *p
	}
	for id, l := range s.lots {
		snap.lots[id] = *l
	}
	for _, d := range s.deliveries {
		snap.deliveries = append(snap.deliveries, *d)
	}
	for id, sale := range s.sales {
		cp := *sale
		cp.Lines = append([]entity.SaleLine(nil), sale.Lines...)
		snap.sales[id] = cp
	}
	for id, p := range s.payments {
		snap.payments[id] = *p
	}
	for id, c := range s.clients {
		snap.clients[id] = *c
	}
	for id, n := range s.notices {
		cp := *n
		cp.recipients = append([]int64(nil), n.recipients...)
		snap.notices[id] = cp
	}
	for _, m := range s.movements {
		snap.movements = append(snap.movements, *m)
	}
	for k, v := range s.cashLinks {
		snap.cashLinks[k] = v
	}
	for k, v := range s.goals {
		snap.goals[k] = v
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.seq = snap.seq
	s.prices = map[int64]*entity.Price{}
	for id, p := range snap.prices {
		cp := p
		s.prices[id] = &cp
	}
	s.lots = map[int64]*entity.StockLot{}
	for id, l := range snap.lots {
		cp := l
		s.lots[id] = &cp
	}
	s.deliveries = nil
	for _, d := range snap.deliveries {
		cp := d
		s.deliveries = append(s.deliveries, &cp)
	}
	s.sales = map[int64]*entity.Sale{}
	for id, sale := range snap.sales {
		cp := sale
		s.sales[id] = &cp
	}
	s.payments = map[int64]*entity.Payment{}
	for id, p := range snap.payments {
		cp := p
		s.payments[id] = &cp
	}
	s.clients = map[int64]*entity.Client{}
	for id, c := range snap.clients {
		cp := c
		s.clients[id] = &cp
	}
	s.notices = map[int64]*storedNotice{}
	for id, n := range snap.notices {
		cp := n
		s.notices[id] = &cp
	}
	s.movements = nil
	for _, m := range snap.movements {
		cp := m
		s.movements = append(s.movements, &cp)
	}
	s.cashLinks = map[int64]int64{}
	for k, v := range snap.cashLinks {
		s.cashLinks[k] = v
	}
	s.goals = map[string]decimal.Decimal{}
	for k, v := range snap.goals {
		s.goals[k] = v
	}
}

// fakeTxRunner ejecuta el callback contra el mismo store, revirtiendo
// al snapshot previo si el callback falla.
type fakeTxRunner struct {
	store *fakeStore
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	snap := f.store.snapshot()
	if err := fn(f.store.repos()); err != nil {
		f.store.restore(snap)
		return err
	}
	return nil
}

// ── repos ─────────────────────────────────────────────────────────────────────

type fakePriceRepo struct{ s *fakeStore }

func (r *fakePriceRepo) GetByID(id int64) (*entity.Price, error) {
	p, ok := r.s.prices[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePriceRepo) ListTemporaryApproved(ids []int64) ([]int64, error) {
	var out []int64
	for _, id := range ids {
		if p, ok := r.s.prices[id]; ok && p.IsTemporary() {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *fakePriceRepo) ClaimUnused(ids []int64) (int64, error) {
	if r.s.beforeClaim != nil {
		hook := r.s.beforeClaim
		r.s.beforeClaim = nil
		hook(r.s)
	}
	var claimed int64
	for _, id := range ids {
		if p, ok := r.s.prices[id]; ok && !p.Used {
			p.Used = true
			claimed++
		}
	}
	return claimed, nil
}

type fakeLotRepo struct{ s *fakeStore }

func (r *fakeLotRepo) matches(l *entity.StockLot, item entity.ItemRef, branchID int64) bool {
	if l.BranchID != branchID {
		return false
	}
	if item.IsPresentation() {
		return l.PresentationID != nil && *l.PresentationID == item.PresentationID
	}
	return l.PresentationID == nil && l.ProductID == item.ProductID
}

func (r *fakeLotRepo) SumRemaining(item entity.ItemRef, branchID int64) (int64, error) {
	var total int64
	for _, l := range r.s.lots {
		if r.matches(l, item, branchID) {
			total += l.RemainingQty
		}
	}
	return total, nil
}

func (r *fakeLotRepo) ListAvailableFIFO(item entity.ItemRef, branchID int64) ([]*entity.StockLot, error) {
	var out []*entity.StockLot
	for _, l := range r.s.lots {
		if r.matches(l, item, branchID) && l.RemainingQty > 0 {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReceivedAt.Equal(out[j].ReceivedAt) {
			return out[i].ReceivedAt.Before(out[j].ReceivedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeLotRepo) Decrement(lotID, qty int64) (bool, error) {
	l, ok := r.s.lots[lotID]
	if !ok || l.RemainingQty < qty {
		return false, nil
	}
	l.RemainingQty -= qty
	return true, nil
}

func (r *fakeLotRepo) Create(lot *entity.StockLot) error {
	lot.ID = r.s.nextID()
	cp := *lot
	r.s.lots[lot.ID] = &cp
	return nil
}

func (r *fakeLotRepo) GetByID(id int64) (*entity.StockLot, error) {
	l, ok := r.s.lots[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLotRepo) Delete(id int64) error {
	delete(r.s.lots, id)
	return nil
}

type fakeDeliveryRepo struct{ s *fakeStore }

func (r *fakeDeliveryRepo) Create(d *entity.StockDelivery) error {
	d.ID = r.s.nextID()
	cp := *d
	r.s.deliveries = append(r.s.deliveries, &cp)
	return nil
}

type fakeThresholdRepo struct{ s *fakeStore }

func (r *fakeThresholdRepo) GetByItem(item entity.ItemRef) (*entity.StockThreshold, error) {
	for _, t := range r.s.thresholds {
		if item.IsPresentation() {
			if t.PresentationID != nil && *t.PresentationID == item.PresentationID {
				cp := *t
				return &cp, nil
			}
			continue
		}
		if t.PresentationID == nil && t.ProductID == item.ProductID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeSaleRepo struct{ s *fakeStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	sale.ID = r.s.nextID()
	for i := range sale.Lines {
		sale.Lines[i].ID = r.s.nextID()
		sale.Lines[i].SaleID = sale.ID
	}
	cp := *sale
	cp.Lines = append([]entity.SaleLine(nil), sale.Lines...)
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(id int64) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	cp.Lines = append([]entity.SaleLine(nil), sale.Lines...)
	return &cp, nil
}

func (r *fakeSaleRepo) LinkPayment(saleID, paymentID int64) error {
	sale, ok := r.s.sales[saleID]
	if !ok {
		return fmt.Errorf("venta %d no existe", saleID)
	}
	sale.PaymentID = &paymentID
	return nil
}

func (r *fakeSaleRepo) Search(crit criteria.Criteria) ([]*entity.Sale, int, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		cp := *sale
		cp.Lines = append([]entity.SaleLine(nil), sale.Lines...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, len(out), nil
}

type fakePaymentRepo struct{ s *fakeStore }

func (r *fakePaymentRepo) Create(p *entity.Payment) error {
	p.ID = r.s.nextID()
	cp := *p
	r.s.payments[p.ID] = &cp
	return nil
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) ListIDsByRoles(roles []string) ([]int64, error) {
	want := map[string]struct{}{}
	for _, role := range roles {
		want[role] = struct{}{}
	}
	var out []int64
	for id, u := range r.s.users {
		if _, ok := want[u.Role]; ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

type fakeClientRepo struct{ s *fakeStore }

func (r *fakeClientRepo) Create(c *entity.Client) error {
	c.ID = r.s.nextID()
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

type fakeNoticeRepo struct{ s *fakeStore }

func (r *fakeNoticeRepo) FindOpenByReference(category string, referenceID int64) (*entity.Notification, []int64, error) {
	for _, n := range r.s.notices {
		if n.notice.Category == category && n.notice.Open &&
			n.notice.ReferenceID != nil && *n.notice.ReferenceID == referenceID {
			cp := n.notice
			return &cp, append([]int64(nil), n.recipients...), nil
		}
	}
	return nil, nil, nil
}

func (r *fakeNoticeRepo) Create(n *entity.Notification, recipientIDs []int64) error {
	n.ID = r.s.nextID()
	r.s.notices[n.ID] = &storedNotice{
		notice:     *n,
		recipients: append([]int64(nil), recipientIDs...),
	}
	return nil
}

func (r *fakeNoticeRepo) AttachRecipients(notificationID int64, userIDs []int64) error {
	n, ok := r.s.notices[notificationID]
	if !ok {
		return fmt.Errorf("notificación %d no existe", notificationID)
	}
	have := map[int64]struct{}{}
	for _, id := range n.recipients {
		have[id] = struct{}{}
	}
	for _, id := range userIDs {
		if _, ok := have[id]; !ok {
			n.recipients = append(n.recipients, id)
		}
	}
	return nil
}

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) CreateBatch(records []*entity.MovementRecord) error {
	for _, m := range records {
		m.ID = r.s.nextID()
		cp := *m
		r.s.movements = append(r.s.movements, &cp)
	}
	return nil
}

type fakeCashRepo struct{ s *fakeStore }

func (r *fakeCashRepo) FindOpenSession(branchID, userID int64) (*entity.CashSession, error) {
	for _, c := range r.s.cashSessions {
		if c.BranchID == branchID && c.UserID == userID && c.Status == entity.CashSessionOpen {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCashRepo) LinkSale(sessionID, saleID int64) error {
	r.s.cashLinks[saleID] = sessionID
	return nil
}

type fakeGoalRepo struct{ s *fakeStore }

func goalKey(userID int64, channel string) string {
	return fmt.Sprintf("%d/%s", userID, channel)
}

func (r *fakeGoalRepo) Increment(userID int64, amount decimal.Decimal, channel string) error {
	k := goalKey(userID, channel)
	r.s.goals[k] = r.s.goals[k].Add(amount)
	return nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) GetProduct(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetPresentation(id int64) (*entity.Presentation, error) {
	p, ok := r.s.presentations[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// ── fixture ───────────────────────────────────────────────────────────────────

const (
	branchMain = int64(1)

	userSeller = int64(1)
	userAdmin  = int64(2)

	productPanadol = int64(10)
	productSuero   = int64(11)
	presCajaSuero  = int64(20)

	priceStdPanadol = int64(100)
	priceTmpPanadol = int64(101)
	priceStdCaja    = int64(102)

	thresholdPanadol = int64(300)

	lotPanadolOld = int64(400)
	lotPanadolNew = int64(401)
	lotCaja       = int64(402)
)

var fixtureEpoch = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func int64Ptr(v int64) *int64 { return &v }

// newFixtureStore arma una tienda con catálogo, precios, lotes, umbral
// y una sesión de caja abierta para el vendedor.
func newFixtureStore() *fakeStore {
	s := newFakeStore()
	s.seq = 1000

	s.users[userSeller] = &entity.User{ID: userSeller, Name: "Vendedor Uno", Role: entity.RoleSeller}
	s.users[userAdmin] = &entity.User{ID: userAdmin, Name: "Admin", Role: entity.RoleAdmin}

	s.products[productPanadol] = &entity.Product{ID: productPanadol, Name: "Panadol Forte"}
	s.products[productSuero] = &entity.Product{ID: productSuero, Name: "Suero Oral"}
	s.presentations[presCajaSuero] = &entity.Presentation{
		ID: presCajaSuero, ProductID: productSuero, Name: "Suero Oral caja x10", Factor: 10,
	}

	s.prices[priceStdPanadol] = &entity.Price{
		ID: priceStdPanadol, ProductID: int64Ptr(productPanadol),
		Amount: decimal.RequireFromString("25.50"),
		State:  entity.PriceStateApproved, Kind: entity.PriceKindStandard,
	}
	s.prices[priceTmpPanadol] = &entity.Price{
		ID: priceTmpPanadol, ProductID: int64Ptr(productPanadol),
		Amount: decimal.RequireFromString("19.999"),
		State:  entity.PriceStateApproved, Kind: entity.PriceKindRequestGenerated,
	}
	s.prices[priceStdCaja] = &entity.Price{
		ID: priceStdCaja, PresentationID: int64Ptr(presCajaSuero),
		Amount: decimal.RequireFromString("120"),
		State:  entity.PriceStateApproved, Kind: entity.PriceKindStandard,
	}

	s.thresholds = append(s.thresholds, &entity.StockThreshold{
		ID: thresholdPanadol, ProductID: productPanadol, MinQty: 5,
	})

	s.lots[lotPanadolOld] = &entity.StockLot{
		ID: lotPanadolOld, ProductID: productPanadol, BranchID: branchMain,
		InitialQty: 5, RemainingQty: 5, ReceivedAt: fixtureEpoch,
	}
	s.lots[lotPanadolNew] = &entity.StockLot{
		ID: lotPanadolNew, ProductID: productPanadol, BranchID: branchMain,
		InitialQty: 10, RemainingQty: 10, ReceivedAt: fixtureEpoch.Add(48 * time.Hour),
	}
	s.lots[lotCaja] = &entity.StockLot{
		ID: lotCaja, ProductID: productSuero, PresentationID: int64Ptr(presCajaSuero),
		BranchID: branchMain, InitialQty: 8, RemainingQty: 8, ReceivedAt: fixtureEpoch,
	}

	s.cashSessions = append(s.cashSessions, &entity.CashSession{
		ID: 900, BranchID: branchMain, UserID: userSeller,
		Status: entity.CashSessionOpen, OpenedAt: fixtureEpoch,
	})

	return s
}
