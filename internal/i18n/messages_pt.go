package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.BrazilianPortuguese

	// Identity errors
	message.SetString(lang, KeyErrEmailInUse, "Já existe um usuário cadastrado com este e-mail.")
	message.SetString(lang, KeyErrWrongPassword, "Senha incorreta.")
	message.SetString(lang, KeyErrUserNotFound, "Usuário não cadastrado.")
	message.SetString(lang, KeyErrPopupClosed, "Popup fechado pelo usuário")
	message.SetString(lang, KeyErrRecentLogin, "O último horário de acesso do usuário não atende ao limite de segurança. Por favor, saia e entre da sua conta e tente novamente")
	message.SetString(lang, KeyErrNetwork, "Sem conexão com a internet")
	message.SetString(lang, KeyErrGeneric, "Ocorreu um erro. Tente novamente mais tarde.")
	message.SetString(lang, KeyErrGoogleHint, "A senha digitada está incorreta. Você pode usar a conta do Google para fazer login.")
	message.SetString(lang, KeyErrBadCredentials, "Credenciais incorretas")
	message.SetString(lang, KeyErrPasswordsDiffer, "As senhas não conferem")
	message.SetString(lang, KeyErrMissingDBUser, "Não foi possível encontrar o usuário no banco de dados")
	message.SetString(lang, KeyErrUnexpected, "Um erro aconteceu. Tente novamente mais tarde.")

	// Validation
	message.SetString(lang, KeyValEmailInvalid, "E-mail inválido")
	message.SetString(lang, KeyValEmailRequired, "E-mail obrigatório")
	message.SetString(lang, KeyValEmailRequiredProfile, "E-mail é obrigatório")
	message.SetString(lang, KeyValPasswordRequired, "Senha obrigatória")
	message.SetString(lang, KeyValPasswordMinLogin, "A senha tem que ter no mínimo 6 caracteres")
	message.SetString(lang, KeyValPasswordMinSignup, "A senha tem que ter mais que 6 caracteres")
	message.SetString(lang, KeyValNameRequired, "Nome é obrigatório")
	message.SetString(lang, KeyValConfirmRequired, "Confirmação de senha obrigatória")
	message.SetString(lang, KeyValConfirmMismatch, "Senhas não conferem")
	message.SetString(lang, KeyValTokenRequired, "Link de redefinição inválido")
	message.SetString(lang, KeyValPhotoRequired, "Selecione uma imagem")
	message.SetString(lang, KeyValInvalid, "Campo inválido")

	// Notifications
	message.SetString(lang, KeyToastLoginTitle, "Login realizado com sucesso!")
	message.SetString(lang, KeyToastLoginBody, "Bem vindo de volta %s")
	message.SetString(lang, KeyToastSignupTitle, "Conta criada com sucesso!")
	message.SetString(lang, KeyToastSignupBody, "Bem vindo %s")
	message.SetString(lang, KeyToastResetSentTitle, "E-mail enviado com sucesso")
	message.SetString(lang, KeyToastResetSentBody, "Cheque sua caixa de entrada e altere sua senha.")
	message.SetString(lang, KeyToastResetDone, "Senha redefinida com sucesso")
	message.SetString(lang, KeyToastNameUpdated, "Nome alterado com sucesso")
	message.SetString(lang, KeyToastEmailUpdated, "E-mail alterado com sucesso")
	message.SetString(lang, KeyToastPasswordUpdated, "Senha alterada com sucesso")
	message.SetString(lang, KeyToastPhotoUpdated, "Foto de perfil atualizada com sucesso")
	message.SetString(lang, KeyToastPhotoFailed, "Erro ao atualizar foto de perfil")
	message.SetString(lang, KeyToastPhotoFailedBody, "Tente novamente mais tarde")
	message.SetString(lang, KeyToastPhotoDeleted, "Foto de perfil deletada com sucesso")
	message.SetString(lang, KeyToastPhotoDeleteError, "Erro ao excluir foto de perfil")
	message.SetString(lang, KeyToastLogout, "Logout feito com sucesso!")
	message.SetString(lang, KeyToastError, "Erro")

	// Pages
	message.SetString(lang, KeyPageLogin, "Entrar")
	message.SetString(lang, KeyPageSignup, "Criar conta")
	message.SetString(lang, KeyPageForgot, "Esqueci minha senha")
	message.SetString(lang, KeyPageReset, "Redefinir senha")
	message.SetString(lang, KeyPageDashboard, "Painel")
	message.SetString(lang, KeyPageProfile, "Perfil")
	message.SetString(lang, KeyLabelName, "Nome")
	message.SetString(lang, KeyLabelEmail, "E-mail")
	message.SetString(lang, KeyLabelPassword, "Senha")
	message.SetString(lang, KeyLabelConfirm, "Confirmação de senha")
	message.SetString(lang, KeyLabelNewPass, "Nova senha")
	message.SetString(lang, KeyLabelPhoto, "Foto de perfil")
	message.SetString(lang, KeyActionLogin, "Entrar")
	message.SetString(lang, KeyActionGoogle, "Entrar com Google")
	message.SetString(lang, KeyActionSignup, "Cadastrar")
	message.SetString(lang, KeyActionForgot, "Esqueceu a senha?")
	message.SetString(lang, KeyActionSend, "Enviar")
	message.SetString(lang, KeyActionSave, "Salvar")
	message.SetString(lang, KeyActionUpload, "Enviar foto")
	message.SetString(lang, KeyActionDelete, "Excluir foto")
	message.SetString(lang, KeyActionLogout, "Sair")
	message.SetString(lang, KeyActionTheme, "Alternar tema")
	message.SetString(lang, KeyDashboardHello, "Olá, %s")
	message.SetString(lang, KeyDashboardRole, "Perfil de acesso: %s")
	message.SetString(lang, KeyDashboardNoPts, "Nenhuma pontuação registrada ainda.")
	message.SetString(lang, KeyResetMailSubj, "Redefinição de senha")
	message.SetString(lang, KeyResetMailBody, "Para redefinir sua senha acesse: %s")
}
