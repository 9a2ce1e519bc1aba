// Package apitest provides an in-memory fake of the storefront REST API for
// package tests. It mirrors the real server's contract closely enough for the
// client packages: basket upserts return server-computed shipping, payment
// intents mint client secrets, and order creation tears the basket down.
package apitest

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
)

type Server struct {
	mu sync.Mutex

	Products   []domain.Product
	Brands     []domain.Brand
	Categories []domain.Category
	Methods    []domain.DeliveryMethod

	// Token, when set, is required as a bearer token on order and account
	// routes; anything else gets a 401.
	Token string

	baskets     map[string]*domain.Basket
	address     *domain.Address
	orders      []domain.Order
	nextOrderID int64
	nextIntent  int

	calls    map[string]int
	failures map[string]int // route -> status for the next call

	httpSrv *httptest.Server
}

func New() *Server {
	s := &Server{
		baskets:     make(map[string]*domain.Basket),
		calls:       make(map[string]int),
		failures:    make(map[string]int),
		nextOrderID: 1,
	}

	r := chi.NewRouter()
	r.Get("/products", s.handleProducts)
	r.Get("/products/brands", s.handleBrands)
	r.Get("/products/categories", s.handleCategories)
	r.Get("/products/{id}", s.handleProduct)
	r.Get("/basket", s.handleGetBasket)
	r.Post("/basket", s.handleSetBasket)
	r.Delete("/basket", s.handleDeleteBasket)
	r.Post("/payments/{basketID}", s.handlePaymentIntent)
	r.Get("/orders/deliveryMethods", s.handleDeliveryMethods)
	r.With(s.requireAuth).Post("/orders", s.handleCreateOrder)
	r.With(s.requireAuth).Get("/orders", s.handleOrders)
	r.With(s.requireAuth).Get("/account/address", s.handleGetAddress)
	r.With(s.requireAuth).Put("/account/address", s.handleUpdateAddress)
	r.Get("/account/emailexists", s.handleEmailExists)

	s.httpSrv = httptest.NewServer(r)
	return s
}

func (s *Server) URL() string { return s.httpSrv.URL }
func (s *Server) Close()      { s.httpSrv.Close() }

// CallCount returns how many times the route was hit. Routes are named
// "METHOD /path" with chi's pattern, e.g. "GET /products".
func (s *Server) CallCount(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// FailNext makes the next call to the route answer with the given status.
func (s *Server) FailNext(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

// SetAddress seeds the saved account address.
func (s *Server) SetAddress(addr domain.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = &addr
}

// Basket returns the stored basket, or nil.
func (s *Server) Basket(id string) *domain.Basket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baskets[id].Clone()
}

// LastOrder returns the most recently created order, or nil.
func (s *Server) LastOrder() *domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.orders) == 0 {
		return nil
	}
	o := s.orders[len(s.orders)-1]
	return &o
}

// track records the hit and reports an injected failure status, 0 for none.
func (s *Server) track(method, pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	route := method + " " + pattern
	s.calls[route]++
	if status, ok := s.failures[route]; ok {
		delete(s.failures, route)
		return status
	}
	return 0
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Token != "" && r.Header.Get("Authorization") != "Bearer "+s.Token {
			respondJSON(w, http.StatusUnauthorized, errorBody{Message: "unauthorized", StatusCode: 401})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if status := s.track("GET", "/products"); status != 0 {
		respondJSON(w, status, errorBody{Message: "injected failure", StatusCode: status})
		return
	}

	q := r.URL.Query()
	brandID, _ := strconv.ParseInt(q.Get("brandId"), 10, 64)
	categoryID, _ := strconv.ParseInt(q.Get("categoryId"), 10, 64)
	search := strings.ToLower(q.Get("search"))
	pageIndex, _ := strconv.Atoi(q.Get("pageIndex"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageSize < 1 {
		pageSize = 6
	}

	s.mu.Lock()
	var filtered []domain.Product
	for _, p := range s.Products {
		if brandID > 0 && p.Brand != brandName(s.Brands, brandID) {
			continue
		}
		if categoryID > 0 && p.Category != categoryName(s.Categories, categoryID) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		filtered = append(filtered, p)
	}
	s.mu.Unlock()

	start := (pageIndex - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	respondJSON(w, http.StatusOK, domain.Page{
		PageIndex: pageIndex,
		PageSize:  pageSize,
		Count:     len(filtered),
		Data:      filtered[start:end],
	})
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	if status := s.track("GET", "/products/{id}"); status != 0 {
		respondJSON(w, status, errorBody{Message: "injected failure", StatusCode: status})
		return
	}

	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Products {
		if p.ID == id {
			respondJSON(w, http.StatusOK, p)
			return
		}
	}
	respondJSON(w, http.StatusNotFound, errorBody{Message: "product not found", StatusCode: 404})
}

func (s *Server) handleBrands(w http.ResponseWriter, _ *http.Request) {
	if status := s.track("GET", "/products/brands"); status != 0 {
		respondJSON(w, status, errorBody{Message: "injected failure", StatusCode: status})
		return
	}
	respondJSON(w, http.StatusOK, s.Brands)
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	if status := s.track("GET", "/products/categories"); status != 0 {
		respondJSON(w, status, errorBody{Message: "injected failure", StatusCode: status})
		return
	}
	respondJSON(w, http.StatusOK, s.Categories)
}

func (s *Server) handleGetBasket(w http.ResponseWriter, r *http.Request) {
	if status := s.track("GET", "/basket"); status != 0 {
		respondJSON(w, status, errorBody{Message: "injected failure", StatusCode: status})
		return
	}

	s.mu.Lock()
	basket := s.baskets[r.URL.Query().Get("id")].Clone()
	s.mu.Unlock()
	if basket == nil {
		respondJSON(w, http.StatusNotFound, errorBody{Message: "basket not found", StatusCode: 404})
		return
	}
	respondJSON(w, http.StatusOK, basket)
}

func (s *Server) handleSetBasket(w http.ResponseWriter, r *http.Request) {
	if status := s.track("POST", "/basket"); status != 0 {
		respondJSON(w, status, errorBody{Message: "injected failure", StatusCode: status})
		return
	}

	var basket domain.Basket
	if err := json.NewDecoder(r.Body).Decode(&basket); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Message: "bad basket payload", StatusCode: 400})
		return
	}

	s.mu.Lock()
	// The server owns the computed shipping price.
	if basket.DeliveryMethodID > 0 {
		for _, m := range s.Methods {
			if m.ID == basket.DeliveryMethodID {
				basket.ShippingPrice = m.Cost
			}
		}
	}
	s.baskets[basket.ID] = basket.Clone()
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, &basket)
}

func (s *Server) handleDeleteBasket(w http.ResponseWriter, r *http.Request) {
	if status := s.track("DELETE", "/basket"); status != 0 {
		respondJSON(w, status, errorBody{Message: "injected failure", StatusCode: status})
		return
	}

	s.mu.Lock()
	delete(s.baskets, r.URL.Query().Get("id"))
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handlePaymentIntent(w http.ResponseWriter, r *http.Request) {
	if status := s.track("POST", "/payments/{basketID}"); status != 0 {
		respondJSON(w, status, errorBody{Message: "injected failure", StatusCode: status})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	basket := s.baskets[chi.URLParam(r, "basketID")]
	if basket == nil {
		respondJSON(w, http.StatusNotFound, errorBody{Message: "basket not found", StatusCode: 404})
		return
	}

	if raw := r.URL.Query().Get("deliveryMethodId"); raw != "" {
		id, _ := strconv.ParseInt(raw, 10, 64)
		basket.DeliveryMethodID = id
		for _, m := range s.Methods {
			if m.ID == id {
				basket.ShippingPrice = m.Cost
			}
		}
	}

	s.nextIntent++
	basket.PaymentIntentID = fmt.Sprintf("pi_%s_%d", basket.ID, s.nextIntent)
	basket.ClientSecret = fmt.Sprintf("cs_%s_%d", basket.ID, s.nextIntent)
	respondJSON(w, http.StatusOK, basket)
}

func (s *Server) handleDeliveryMethods(w http.ResponseWriter, _ *http.Request) {
	if status := s.track("GET", "/orders/deliveryMethods"); status != 0 {
		respondJSON(w, status, errorBody{Message: "injected failure", StatusCode: status})
		return
	}
	respondJSON(w, http.StatusOK, s.Methods)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	if status := s.track("POST", "/orders"); status != 0 {
		respondJSON(w, status, errorBody{Message: "injected failure", StatusCode: status})
		return
	}

	var req domain.OrderToCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Message: "bad order payload", StatusCode: 400})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	basket := s.baskets[req.BasketID]
	if basket == nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Message: "basket not found", StatusCode: 400})
		return
	}

	var methodName string
	var deliveryCost float64
	for _, m := range s.Methods {
		if m.ID == req.DeliveryMethodID {
			methodName = m.ShortName
			deliveryCost = m.Cost
		}
	}

	items := make([]domain.OrderItem, 0, len(basket.Items))
	var subtotal float64
	for _, it := range basket.Items {
		items = append(items, domain.OrderItem{
			ProductID:   it.ID,
			ProductName: it.ProductName,
			PictureURL:  it.PictureURL,
			Price:       it.Price,
			Quantity:    it.Quantity,
		})
		subtotal += it.Price * float64(it.Quantity)
	}

	order := domain.Order{
		ID:             s.nextOrderID,
		ShipToAddress:  req.ShippingAddress,
		DeliveryMethod: methodName,
		DeliveryCost:   deliveryCost,
		Items:          items,
		Subtotal:       subtotal,
		Status:         "Pending",
		Total:          subtotal + deliveryCost,
	}
	s.nextOrderID++
	s.orders = append(s.orders, order)

	// Order creation consumes the basket server-side.
	delete(s.baskets, req.BasketID)

	respondJSON(w, http.StatusOK, &order)
}

func (s *Server) handleOrders(w http.ResponseWriter, _ *http.Request) {
	if status := s.track("GET", "/orders"); status != 0 {
		respondJSON(w, status, errorBody{Message: "injected failure", StatusCode: status})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.orders)
}

func (s *Server) handleGetAddress(w http.ResponseWriter, _ *http.Request) {
	if status := s.track("GET", "/account/address"); status != 0 {
		respondJSON(w, status, errorBody{Message: "injected failure", StatusCode: status})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.address == nil {
		respondJSON(w, http.StatusNotFound, errorBody{Message: "no saved address", StatusCode: 404})
		return
	}
	respondJSON(w, http.StatusOK, s.address)
}

func (s *Server) handleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	if status := s.track("PUT", "/account/address"); status != 0 {
		respondJSON(w, status, errorBody{Message: "injected failure", StatusCode: status})
		return
	}

	var addr domain.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Message: "bad address payload", StatusCode: 400})
		return
	}
	s.mu.Lock()
	s.address = &addr
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, &addr)
}

func (s *Server) handleEmailExists(w http.ResponseWriter, r *http.Request) {
	if status := s.track("GET", "/account/emailexists"); status != 0 {
		respondJSON(w, status, errorBody{Message: "injected failure", StatusCode: status})
		return
	}
	email := r.URL.Query().Get("email")
	respondJSON(w, http.StatusOK, email == "taken@example.com")
}

func brandName(brands []domain.Brand, id int64) string {
	for _, b := range brands {
		if b.ID == id {
			return b.Name
		}
	}
	return ""
}

func categoryName(categories []domain.Category, id int64) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

type errorBody struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
