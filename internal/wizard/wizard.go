package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/ports"
	"github.com/Gunvolt24/storage_portal/internal/querycache"
	"github.com/Gunvolt24/storage_portal/pkg/metrics"
	"github.com/Gunvolt24/storage_portal/pkg/validate"
	"github.com/google/uuid"
)

var (
	ErrNotOpen             = errors.New("wizard is not open")
	ErrAssistedUnsupported = errors.New("assisted packing is not supported yet")
	ErrSubmitInFlight      = errors.New("order submission already in flight")
	ErrWizardClosed        = errors.New("wizard was closed while the request was in flight")
	ErrUnknownUpload       = errors.New("unknown upload")
	ErrUploadSettled       = errors.New("upload already finished")
	ErrUnknownPhoto        = errors.New("photo is not part of the draft")
)

const DefaultSubmitTimeout = 30 * time.Second

// Options — зависимости мастера, которые удобно подменять в тестах.
type Options struct {
	Validator     ports.DraftValidator
	Logger        ports.Logger
	Now           func() time.Time
	NewID         func() string
	SubmitTimeout time.Duration
}

// Wizard — мастер создания заказа одной сессии.
// Сетевые вызовы выполняются без удержания мьютекса; ответы запросов,
// начатых до закрытия мастера, на его состояние не влияют.
type Wizard struct {
	api           ports.StorageAPI
	cache         *querycache.Cache
	validator     ports.DraftValidator
	log           ports.Logger
	now           func() time.Time
	newID         func() string
	submitTimeout time.Duration

	mu            sync.Mutex
	open          bool
	gen           uint64
	state         State
	issued        map[string]struct{} // все выданные sessionId
	uploads       []*Upload
	submitting    bool
	lastErr       *domain.APIError
	submit        *querycache.Mutation[domain.CreateOrderRequest, *domain.Order]
}

// View — снимок мастера для UI.
type View struct {
	Open       bool             `json:"open"`
	Step       Step             `json:"step"`
	Draft      *domain.Draft    `json:"draft,omitempty"`
	CanProceed ValidationResult `json:"can_proceed"`
	Uploads    []Upload         `json:"uploads"`
	Submitting bool             `json:"submitting"`
	LastError  string           `json:"last_error,omitempty"`
}

func New(api ports.StorageAPI, cache *querycache.Cache, opts Options) *Wizard {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = DefaultSubmitTimeout
	}
	return &Wizard{
		api:           api,
		cache:         cache,
		validator:     opts.Validator,
		log:           opts.Logger,
		now:           opts.Now,
		newID:         opts.NewID,
		submitTimeout: opts.SubmitTimeout,
	}
}

// Open — сбрасывает черновик, выдаёт новый sessionId и встаёт на первый шаг.
func (w *Wizard) Open(addr domain.Address) View {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.open {
		w.resetLocked()
	}
	w.open = true
	w.gen++
	w.state = Initial(w.freshSessionIDLocked(), addr)
	w.submit = querycache.NewMutation(w.cache, querycache.MutationSpec[domain.CreateOrderRequest, *domain.Order]{
		Call: w.api.CreateOrder,
		Affects: querycache.Invalidates[domain.CreateOrderRequest, *domain.Order](
			querycache.AnyOf(querycache.ResourceOrders),
			querycache.AnyOf(querycache.ResourceBoxes),
			querycache.AnyOf(querycache.ResourceSlots),
		),
	})
	metrics.WizardTransitions.WithLabelValues("open", "ok").Inc()
	return w.viewLocked()
}

// Close — закрывает мастер и сразу забывает черновик. Идущие запросы не отменяются.
func (w *Wizard) Close() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.open {
		w.resetLocked()
		metrics.WizardTransitions.WithLabelValues("close", "ok").Inc()
	}
	return w.viewLocked()
}

func (w *Wizard) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked()
}

// Advance — следующий шаг; при непройденном шаге состояние не меняется.
func (w *Wizard) Advance() (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return w.viewLocked(), ErrNotOpen
	}
	if w.submitting {
		return w.viewLocked(), ErrSubmitInFlight
	}
	next, res := Advance(w.state, w.now())
	if !res.Valid {
		metrics.WizardTransitions.WithLabelValues("advance", "blocked").Inc()
		return w.viewLocked(), res.asError(w.state.Step)
	}
	w.state = next
	metrics.WizardTransitions.WithLabelValues("advance", "ok").Inc()
	return w.viewLocked(), nil
}

func (w *Wizard) Retreat() (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return w.viewLocked(), ErrNotOpen
	}
	if w.submitting {
		return w.viewLocked(), ErrSubmitInFlight
	}
	w.state = Retreat(w.state)
	metrics.WizardTransitions.WithLabelValues("retreat", "ok").Inc()
	return w.viewLocked(), nil
}

// UpdateDraft — применяет патч; некорректные поля возвращаются как *ValidationError.
func (w *Wizard) UpdateDraft(p Patch) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return w.viewLocked(), ErrNotOpen
	}
	if w.submitting {
		return w.viewLocked(), ErrSubmitInFlight
	}
	next, res := UpdateDraft(w.state, p)
	w.state = next
	return w.viewLocked(), res.asError(w.state.Step)
}

func (w *Wizard) IncrementQuantity() (View, error) {
	return w.apply(IncrementQuantity)
}

func (w *Wizard) DecrementQuantity() (View, error) {
	return w.apply(DecrementQuantity)
}

// SelectSlot — запоминает слот вместе с его доступностью на момент выбора.
func (w *Wizard) SelectSlot(slot domain.Slot) (View, error) {
	return w.apply(func(s State) State {
		d := s.Draft.Clone()
		d.Slot = &domain.SlotSelection{
			SlotID:    slot.ID,
			Type:      slot.Type,
			Start:     slot.Start,
			End:       slot.End,
			Available: slot.Available,
		}
		return State{Step: s.Step, Draft: d}
	})
}

func (w *Wizard) ClearSlot() (View, error) {
	return w.apply(func(s State) State {
		d := s.Draft.Clone()
		d.Slot = nil
		return State{Step: s.Step, Draft: d}
	})
}

// Upload — пакетная загрузка фотографий. Файлы сверх текущего количества коробок
// и файлы неподдерживаемого типа отклоняются поштучно, до сети.
func (w *Wizard) Upload(ctx context.Context, files []domain.UploadFile) (*UploadReport, error) {
	w.mu.Lock()
	if !w.open {
		w.mu.Unlock()
		return nil, ErrNotOpen
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmitInFlight
	}

	report := &UploadReport{}
	free := w.state.Draft.Quantity - len(w.state.Draft.PhotoRefs) - w.pendingLocked()
	batch := make([]*Upload, 0, len(files))
	pending := make([]*Upload, 0, len(files))
	send := make([]domain.UploadFile, 0, len(files))

	for _, f := range files {
		u := &Upload{ID: w.newID(), Filename: f.Filename, Status: UploadPending}
		w.uploads = append(w.uploads, u)
		batch = append(batch, u)

		ct, err := sniffPhoto(&f)
		switch {
		case err != nil:
			report.fail(u, "не удалось прочитать файл")
		case ct == "":
			report.fail(u, "неподдерживаемый тип файла")
		case free <= 0:
			report.fail(u, fmt.Sprintf("не больше %d фотографий", w.state.Draft.Quantity))
		default:
			free--
			f.ContentType = ct
			send = append(send, f)
			pending = append(pending, u)
		}
	}
	gen := w.gen
	sessionID := w.state.Draft.SessionID
	w.mu.Unlock()

	var (
		res *domain.UploadResult
		err error
	)
	if len(send) > 0 {
		m := querycache.NewMutation(w.cache, querycache.MutationSpec[[]domain.UploadFile, *domain.UploadResult]{
			Call: func(ctx context.Context, files []domain.UploadFile) (*domain.UploadResult, error) {
				return w.api.UploadPhotos(ctx, sessionID, files)
			},
			Affects: querycache.Invalidates[[]domain.UploadFile, *domain.UploadResult](
				querycache.NewKey(querycache.ResourcePhotos, "session", sessionID),
			),
		})
		res, err = m.Mutate(ctx, send)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.gen {
		for _, u := range pending {
			u.Status = UploadAbandoned
		}
		report.Uploads = snapshotUploads(batch)
		return report, ErrWizardClosed
	}

	if err != nil {
		apiErr := domain.NormalizeError(err)
		for _, u := range pending {
			if u.Status == UploadAbandoned {
				continue
			}
			report.fail(u, apiErr.Message)
		}
	} else if len(pending) > 0 {
		uploaded, failed := matchUploads(pending, res)
		for _, u := range pending {
			if u.Status == UploadAbandoned {
				continue
			}
			if p, ok := uploaded[u]; ok {
				u.Status = UploadUploaded
				u.PhotoID = p.ID
				w.state.Draft.PhotoRefs = append(w.state.Draft.PhotoRefs, p.ID)
				continue
			}
			report.fail(u, failed[u])
		}
	}

	for _, u := range batch {
		if u.Status == UploadUploaded {
			report.TotalUploaded++
		}
	}
	report.Uploads = snapshotUploads(batch)
	return report, err
}

// AbandonUpload — убирает ожидающую загрузку; её ответ будет проигнорирован.
func (w *Wizard) AbandonUpload(id string) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return w.viewLocked(), ErrNotOpen
	}
	if w.submitting {
		return w.viewLocked(), ErrSubmitInFlight
	}
	for _, u := range w.uploads {
		if u.ID != id {
			continue
		}
		if u.Status != UploadPending {
			return w.viewLocked(), fmt.Errorf("%w: %s is %s", ErrUploadSettled, id, u.Status)
		}
		u.Status = UploadAbandoned
		return w.viewLocked(), nil
	}
	return w.viewLocked(), fmt.Errorf("%w: %s", ErrUnknownUpload, id)
}

// RemovePhoto — удаляет загруженную фотографию в бэкенде и из черновика.
func (w *Wizard) RemovePhoto(ctx context.Context, ref string) (View, error) {
	w.mu.Lock()
	if !w.open {
		defer w.mu.Unlock()
		return w.viewLocked(), ErrNotOpen
	}
	if w.submitting {
		defer w.mu.Unlock()
		return w.viewLocked(), ErrSubmitInFlight
	}
	if indexOf(w.state.Draft.PhotoRefs, ref) < 0 {
		defer w.mu.Unlock()
		return w.viewLocked(), fmt.Errorf("%w: %s", ErrUnknownPhoto, ref)
	}
	gen := w.gen
	sessionID := w.state.Draft.SessionID
	w.mu.Unlock()

	m := querycache.NewMutation(w.cache, querycache.MutationSpec[string, *domain.Message]{
		Call: w.api.DeletePhoto,
		Affects: querycache.Invalidates[string, *domain.Message](
			querycache.NewKey(querycache.ResourcePhotos, "session", sessionID),
		),
	})
	_, err := m.Mutate(ctx, ref)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		return w.viewLocked(), err
	}
	if gen == w.gen {
		if i := indexOf(w.state.Draft.PhotoRefs, ref); i >= 0 {
			w.state.Draft.PhotoRefs = append(w.state.Draft.PhotoRefs[:i:i], w.state.Draft.PhotoRefs[i+1:]...)
		}
	}
	return w.viewLocked(), nil
}

// Submit — единственный POST /orders с полным черновиком.
// Успех закрывает мастер; ошибка оставляет его на Review с нетронутым черновиком.
// Запрос не отменяется вместе с ctx вызывающего.
func (w *Wizard) Submit(ctx context.Context) (*domain.Order, error) {
	w.mu.Lock()
	if !w.open {
		w.mu.Unlock()
		return nil, ErrNotOpen
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if w.state.Step != StepReview {
		step := w.state.Step
		w.mu.Unlock()
		metrics.WizardSubmissions.WithLabelValues("rejected").Inc()
		return nil, &ValidationError{Step: step, Fields: map[string]string{"step": "отправка доступна только на шаге review"}}
	}

	draft := w.state.Draft.Clone()
	res := CanProceed(StepReview, &draft, w.now())
	if w.validator != nil {
		if err := w.validator.Validate(ctx, &draft); err != nil {
			fields := validate.Fields(err)
			if len(fields) == 0 {
				fields = map[string]string{"draft": err.Error()}
			}
			for f, msg := range fields {
				res.add(f, msg)
			}
		}
	}
	if !res.Valid {
		w.mu.Unlock()
		metrics.WizardSubmissions.WithLabelValues("rejected").Inc()
		return nil, res.asError(StepReview)
	}
	if draft.ServiceType == domain.ServiceAssisted {
		w.mu.Unlock()
		metrics.WizardSubmissions.WithLabelValues("rejected").Inc()
		return nil, ErrAssistedUnsupported
	}

	w.submitting = true
	w.lastErr = nil
	gen := w.gen
	m := w.submit
	w.mu.Unlock()

	subCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.submitTimeout)
	defer cancel()
	order, err := m.Mutate(subCtx, domain.NewCreateOrderRequest(&draft))

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.gen {
		// мастер закрыли, пока шёл запрос: результат уже никому не показываем
		if err != nil {
			metrics.WizardSubmissions.WithLabelValues("failed").Inc()
		} else {
			metrics.WizardSubmissions.WithLabelValues("ok").Inc()
		}
		return order, err
	}
	w.submitting = false

	if err != nil {
		w.lastErr = domain.NormalizeError(err)
		metrics.WizardSubmissions.WithLabelValues("failed").Inc()
		if w.log != nil {
			w.log.Warnf(ctx, "wizard submit failed: session_id=%s: %v", draft.SessionID, err)
		}
		return nil, err
	}

	metrics.WizardSubmissions.WithLabelValues("ok").Inc()
	if w.log != nil {
		w.log.Infof(ctx, "order created: order_id=%s session_id=%s", order.ID, draft.SessionID)
	}
	w.resetLocked()
	return order, nil
}

// ------вспомогательные функции------

func (w *Wizard) apply(fn func(State) State) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return w.viewLocked(), ErrNotOpen
	}
	if w.submitting {
		return w.viewLocked(), ErrSubmitInFlight
	}
	w.state = fn(w.state)
	return w.viewLocked(), nil
}

func (w *Wizard) resetLocked() {
	w.open = false
	w.gen++
	w.state = State{}
	w.uploads = nil
	w.submitting = false
	w.lastErr = nil
	w.submit = nil
}

// freshSessionIDLocked — новый sessionId, не совпадающий ни с одним выданным этим мастером.
func (w *Wizard) freshSessionIDLocked() string {
	if w.issued == nil {
		w.issued = make(map[string]struct{})
	}
	sid := w.newID()
	for i := 0; sid == "" || w.isIssued(sid); i++ {
		if i < 3 {
			sid = w.newID()
		} else {
			sid = uuid.NewString()
		}
	}
	w.issued[sid] = struct{}{}
	return sid
}

func (w *Wizard) isIssued(sid string) bool {
	_, ok := w.issued[sid]
	return ok
}

func (w *Wizard) pendingLocked() int {
	n := 0
	for _, u := range w.uploads {
		if u.Status == UploadPending {
			n++
		}
	}
	return n
}

func (w *Wizard) viewLocked() View {
	v := View{Open: w.open, Uploads: []Upload{}}
	if !w.open {
		return v
	}
	d := w.state.Draft.Clone()
	v.Step = w.state.Step
	v.Draft = &d
	v.CanProceed = CanProceed(w.state.Step, &d, w.now())
	v.Uploads = snapshotUploads(w.uploads)
	v.Submitting = w.submitting
	if w.lastErr != nil {
		v.LastError = w.lastErr.Message
	}
	return v
}

func snapshotUploads(us []*Upload) []Upload {
	out := make([]Upload, 0, len(us))
	for _, u := range us {
		out = append(out, *u)
	}
	return out
}

func indexOf(refs []string, ref string) int {
	for i, r := range refs {
		if r == ref {
			return i
		}
	}
	return -1
}
