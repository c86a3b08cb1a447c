package usecase

import (
	"time"

	"github.com/adityarizkyr/reviora/internal/domain"
)

// In-memory fakes shared by the usecase tests. Each fake implements just
// enough of its repository interface; unexpected calls fail loudly through
// nil function fields where behavior must be explicit.

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(user *domain.User, profile *domain.Profile) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Update(user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*domain.User, int, error) {
	out := []*domain.User{}
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (r *fakeUserRepo) UpdateLastLogin(id string) error {
	if u, ok := r.users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
		return nil
	}
	return domain.ErrUserNotFound
}

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
}

func newFakeProfileRepo(profiles ...*domain.Profile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: map[string]*domain.Profile{}}
	for _, p := range profiles {
		repo.profiles[p.UserID] = p
	}
	return repo
}

func (r *fakeProfileRepo) GetByUserID(userID string) (*domain.Profile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeProfileRepo) Update(profile *domain.Profile) error {
	if _, ok := r.profiles[profile.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) ResetDailyCounters(before time.Time) (int64, error) {
	var reset int64
	for _, p := range r.profiles {
		if p.LastTaskReset.Before(before) {
			p.DailyTasksCompleted = 0
			p.LastTaskReset = time.Now()
			reset++
		}
	}
	return reset, nil
}

type fakeProductRepo struct {
	products []*domain.Product
}

func (r *fakeProductRepo) Create(product *domain.Product) error {
	r.products = append(r.products, product)
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *fakeProductRepo) Update(product *domain.Product) error {
	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = product
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (r *fakeProductRepo) Delete(id string) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (r *fakeProductRepo) List(limit, offset int) ([]*domain.Product, int, error) {
	return r.products, len(r.products), nil
}

func (r *fakeProductRepo) ListActive() ([]*domain.Product, error) {
	active := []*domain.Product{}
	for _, p := range r.products {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

type fakeTaskRepo struct {
	replacedUserID string
	replacedTasks  []*domain.UserTask
	replacedNext   int
	replaceErr     error

	completeFn func(taskID, userID, proof string) (*domain.CompletionResult, error)
	declineFn  func(taskID, userID string) (*domain.DeclineResult, error)

	tasks map[string]*domain.UserTask
}

// ReplaceBatch mirrors the real repository's replacement semantics: prior
// active tasks of the user are deactivated and linked to the first task of
// the new batch before the new rows are installed.
func (r *fakeTaskRepo) ReplaceBatch(userID string, tasks []*domain.UserTask, nextTaskNumber int) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	if r.tasks == nil {
		r.tasks = map[string]*domain.UserTask{}
	}
	for _, prior := range r.tasks {
		if prior.UserID == userID && prior.IsActive {
			prior.IsActive = false
			replacedBy := tasks[0].ID
			prior.ReplacedByID = &replacedBy
		}
	}
	for _, task := range tasks {
		r.tasks[task.ID] = task
	}
	r.replacedUserID = userID
	r.replacedTasks = tasks
	r.replacedNext = nextTaskNumber
	return nil
}

func (r *fakeTaskRepo) GetByID(id string) (*domain.UserTask, error) {
	if t, ok := r.tasks[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *fakeTaskRepo) GetCurrent(userID string) (*domain.UserTask, error) {
	var current *domain.UserTask
	for _, t := range r.tasks {
		if t.UserID != userID || !t.IsActive || t.Status != domain.TaskStatusAssigned {
			continue
		}
		if current == nil || t.TaskNumber < current.TaskNumber {
			current = t
		}
	}
	if current == nil {
		return nil, domain.ErrTaskNotFound
	}
	return current, nil
}

func (r *fakeTaskRepo) ListActive(userID string, filter domain.TaskFilter) ([]*domain.UserTask, error) {
	out := []*domain.UserTask{}
	for _, t := range r.tasks {
		if t.UserID == userID && t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListHistory(userID string, filter domain.HistoryFilter) ([]*domain.UserTask, int, error) {
	out := []*domain.UserTask{}
	for _, t := range r.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, len(out), nil
}

func (r *fakeTaskRepo) Complete(taskID, userID, proof string) (*domain.CompletionResult, error) {
	return r.completeFn(taskID, userID, proof)
}

func (r *fakeTaskRepo) Decline(taskID, userID string) (*domain.DeclineResult, error) {
	return r.declineFn(taskID, userID)
}

func (r *fakeTaskRepo) AdminUpdate(id string, edit domain.TaskEdit) (*domain.UserTask, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if edit.Status != nil {
		task.Status = *edit.Status
	}
	if edit.ProfitAmount != nil {
		task.ProfitAmount = *edit.ProfitAmount
	}
	if edit.IsForced != nil {
		task.IsForced = *edit.IsForced
	}
	if edit.DepositAmount != nil {
		task.DepositAmount = edit.DepositAmount
	}
	if edit.DepositStatus != nil {
		task.DepositStatus = edit.DepositStatus
	}
	return task, nil
}

type fakeDepositRepo struct {
	deposits  map[string]*domain.Deposit
	verifyErr error
}

func newFakeDepositRepo() *fakeDepositRepo {
	return &fakeDepositRepo{deposits: map[string]*domain.Deposit{}}
}

func (r *fakeDepositRepo) Create(deposit *domain.Deposit) error {
	deposit.CreatedAt = time.Now()
	r.deposits[deposit.ID] = deposit
	return nil
}

func (r *fakeDepositRepo) GetByID(id string) (*domain.Deposit, error) {
	if d, ok := r.deposits[id]; ok {
		return d, nil
	}
	return nil, domain.ErrDepositNotFound
}

func (r *fakeDepositRepo) ListByUser(userID string, limit, offset int) ([]*domain.Deposit, int, error) {
	out := []*domain.Deposit{}
	for _, d := range r.deposits {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, len(out), nil
}

func (r *fakeDepositRepo) List(status string, limit, offset int) ([]*domain.Deposit, int, error) {
	out := []*domain.Deposit{}
	for _, d := range r.deposits {
		if status == "" || d.Status == status {
			out = append(out, d)
		}
	}
	return out, len(out), nil
}

func (r *fakeDepositRepo) Verify(id, status string, adminNote *string) (*domain.Deposit, error) {
	if r.verifyErr != nil {
		return nil, r.verifyErr
	}
	d, ok := r.deposits[id]
	if !ok {
		return nil, domain.ErrDepositNotFound
	}
	if d.Status != domain.DepositStatusPending {
		return nil, domain.ErrDepositAlreadyResolved
	}
	d.Status = status
	d.AdminNote = adminNote
	now := time.Now()
	d.ResolvedAt = &now
	return d, nil
}

type fakeWithdrawalRepo struct {
	withdrawals map[string]*domain.Withdrawal
	debitErr    error
}

func newFakeWithdrawalRepo() *fakeWithdrawalRepo {
	return &fakeWithdrawalRepo{withdrawals: map[string]*domain.Withdrawal{}}
}

func (r *fakeWithdrawalRepo) CreateWithDebit(withdrawal *domain.Withdrawal) error {
	if r.debitErr != nil {
		return r.debitErr
	}
	withdrawal.CreatedAt = time.Now()
	r.withdrawals[withdrawal.ID] = withdrawal
	return nil
}

func (r *fakeWithdrawalRepo) GetByID(id string) (*domain.Withdrawal, error) {
	if w, ok := r.withdrawals[id]; ok {
		return w, nil
	}
	return nil, domain.ErrWithdrawalNotFound
}

func (r *fakeWithdrawalRepo) ListByUser(userID string, limit, offset int) ([]*domain.Withdrawal, int, error) {
	out := []*domain.Withdrawal{}
	for _, w := range r.withdrawals {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, len(out), nil
}

func (r *fakeWithdrawalRepo) List(status string, limit, offset int) ([]*domain.Withdrawal, int, error) {
	out := []*domain.Withdrawal{}
	for _, w := range r.withdrawals {
		if status == "" || w.Status == status {
			out = append(out, w)
		}
	}
	return out, len(out), nil
}

func (r *fakeWithdrawalRepo) Process(id, status string, adminNote *string) (*domain.Withdrawal, error) {
	w, ok := r.withdrawals[id]
	if !ok {
		return nil, domain.ErrWithdrawalNotFound
	}
	if w.Status != domain.WithdrawalStatusPending {
		return nil, domain.ErrWithdrawalAlreadyResolved
	}
	w.Status = status
	w.AdminNote = adminNote
	now := time.Now()
	w.ResolvedAt = &now
	return w, nil
}

type fakeVipRepo struct {
	levels []*domain.VipLevel
}

func (r *fakeVipRepo) Create(level *domain.VipLevel) error {
	r.levels = append(r.levels, level)
	return nil
}

func (r *fakeVipRepo) GetByLevel(level int) (*domain.VipLevel, error) {
	for _, l := range r.levels {
		if l.Level == level {
			return l, nil
		}
	}
	return nil, domain.ErrVipLevelNotFound
}

func (r *fakeVipRepo) List() ([]*domain.VipLevel, error) {
	return r.levels, nil
}

func (r *fakeVipRepo) Update(level *domain.VipLevel) error {
	for i, l := range r.levels {
		if l.Level == level.Level {
			r.levels[i] = level
			return nil
		}
	}
	return domain.ErrVipLevelNotFound
}

func (r *fakeVipRepo) Delete(level int) error {
	for i, l := range r.levels {
		if l.Level == level {
			r.levels = append(r.levels[:i], r.levels[i+1:]...)
			return nil
		}
	}
	return domain.ErrVipLevelNotFound
}

type fakeNotificationRepo struct {
	notifications []*domain.Notification
}

func (r *fakeNotificationRepo) Create(notification *domain.Notification) error {
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) List(limit, offset int) ([]*domain.Notification, int, error) {
	return r.notifications, len(r.notifications), nil
}

func (r *fakeNotificationRepo) MarkRead(id string) error {
	for _, n := range r.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

type fakeCacheRepo struct {
	products []*domain.Product
	levels   []*domain.VipLevel

	productWrites int
	levelWrites   int
	invalidations int
}

func (r *fakeCacheRepo) CacheActiveProducts(products []*domain.Product) error {
	r.products = products
	r.productWrites++
	return nil
}

func (r *fakeCacheRepo) GetActiveProducts() ([]*domain.Product, error) {
	return r.products, nil
}

func (r *fakeCacheRepo) InvalidateProducts() error {
	r.products = nil
	r.invalidations++
	return nil
}

func (r *fakeCacheRepo) CacheVipLevels(levels []*domain.VipLevel) error {
	r.levels = levels
	r.levelWrites++
	return nil
}

func (r *fakeCacheRepo) GetVipLevels() ([]*domain.VipLevel, error) {
	return r.levels, nil
}

func (r *fakeCacheRepo) InvalidateVipLevels() error {
	r.levels = nil
	r.invalidations++
	return nil
}

type fakeAuthService struct{}

func (s *fakeAuthService) GenerateAccessToken(user *domain.User) (string, error) {
	return "token-" + user.ID, nil
}

func (s *fakeAuthService) ValidateToken(token string) (*domain.AuthClaims, error) {
	return nil, domain.ErrInvalidCredentials
}
