// Пакет rbac — политика доступа двухролевого workflow публикации.
// Creator создаёт и управляет контентом; verifier дополнительно
// подтверждает (verify) его. Аутентификация конфигурационная:
// login code сопоставляется с одним из настроенных наборов кодов.
package rbac

// Роли workflow публикации.
const (
	// RoleCreator — автор: создание, редактирование, удаление контента.
	RoleCreator = "creator"
	// RoleVerifier — верификатор: всё, что может creator, плюс verify.
	RoleVerifier = "verifier"
)

// Действия над контентом.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionVerify = "verify"
)

// Session — аутентифицированный актор. Восстанавливается из session token
// на каждый запрос и связывает каждую мутацию с актором.
type Session struct {
	// LoginCode — код доступа, под которым выполнен вход.
	LoginCode string
	// Role — роль, определённая при входе (creator, verifier).
	Role string
}

// IsValidRole проверяет, является ли строка допустимой ролью.
func IsValidRole(role string) bool {
	return role == RoleCreator || role == RoleVerifier
}

// CanPerform решает, разрешено ли роли выполнить действие.
// create/update/delete доступны обеим ролям — плоская модель доверия
// внутри роли, без ограничения по владельцу. verify — только verifier,
// в том числе над чужим контентом; creator не может верифицировать
// даже собственный.
func CanPerform(role, action string) bool {
	if !IsValidRole(role) {
		return false
	}
	switch action {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	case ActionVerify:
		return role == RoleVerifier
	default:
		return false
	}
}

// RoleForLoginCode сопоставляет login code с ролью по настроенным наборам
// кодов. Возвращает ("", false), если код не входит ни в один набор.
// Наборы кодов загружаются один раз при старте процесса и передаются
// сюда явно.
func RoleForLoginCode(code string, creatorCodes, verifierCodes []string) (string, bool) {
	if code == "" {
		return "", false
	}
	if containsCode(creatorCodes, code) {
		return RoleCreator, true
	}
	if containsCode(verifierCodes, code) {
		return RoleVerifier, true
	}
	return "", false
}

// containsCode проверяет вхождение кода в набор.
func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
