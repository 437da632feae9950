package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys double as the en-US source strings, following the
// x/text convention. Notification texts for summon responses keep the
// exact wording of the bot's original message set.
const (
	MsgSummonInvite    = "%s summons you to *%s*"
	MsgResponseJoin    = "%s join you in *%s*"
	MsgResponseLater   = "%s will join you in *%s* in a short while"
	MsgResponseDecline = "%s declined summon for *%s*"

	MsgActivityCreated  = "Activity *%s* created"
	MsgActivityRemoved  = "Activity *%s* removed"
	MsgActivityNotFound = "Activity *%s* not found."
	MsgActivityExists   = "activity with name *%s* already exists."
	MsgNameTooLong      = "name should be no longer than *%d* characters."
	MsgNameEmpty        = "name is empty."
	MsgNameBadCharset   = "allowed only alphanumeric characters, spaces and `_.-`"

	MsgSubscribed    = "Subscribed to *%s*"
	MsgUnsubscribed  = "Unsubscribed from *%s*"
	MsgSummonSent    = "Summoned %d subscribers to *%s*"
	MsgNoOneToSummon = "No one to summon for *%s*"

	MsgGreeting        = "Hello! Register activities, subscribe to them and summon your people."
	MsgStatus          = "Login: *%s*, ready: %v"
	MsgSubscriptions   = "Subscribed to: %s"
	MsgNoSubscriptions = "No subscriptions yet"
	MsgActivityList    = "Known activities: %s"
	MsgNoActivities    = "No activities yet"

	MsgReady           = "You are ready to be summoned"
	MsgDoNotDisturb    = "You will not be summoned until you are ready again"
	MsgCancelled       = "Cancelled"
	MsgNothingToCancel = "Nothing to cancel"
	MsgAskActivityName = "Send me the activity name"

	MsgPromoted     = "User *%s* promoted"
	MsgDemoted      = "User *%s* demoted"
	MsgUserNotFound = "User *%s* not found."

	MsgNotEnoughRights = "Not enough rights"
	MsgGenericFailure  = "Something went wrong, please try again later"

	MsgButtonJoin    = "Join now"
	MsgButtonLater   = "Coming"
	MsgButtonDecline = "Decline"
)

func init() {
	for key, text := range map[string]string{
		MsgSummonInvite:    "%s зовёт вас на *%s*",
		MsgResponseJoin:    "%s присоединяется к вам на *%s*",
		MsgResponseLater:   "%s скоро присоединится к вам на *%s*",
		MsgResponseDecline: "%s отклонил приглашение на *%s*",

		MsgActivityCreated:  "Активность *%s* создана",
		MsgActivityRemoved:  "Активность *%s* удалена",
		MsgActivityNotFound: "Активность *%s* не найдена.",
		MsgActivityExists:   "активность с именем *%s* уже существует.",
		MsgNameTooLong:      "имя не должно быть длиннее *%d* символов.",
		MsgNameEmpty:        "имя пустое.",
		MsgNameBadCharset:   "допустимы только буквы, цифры, пробелы и `_.-`",

		MsgSubscribed:    "Вы подписаны на *%s*",
		MsgUnsubscribed:  "Вы отписаны от *%s*",
		MsgSummonSent:    "Призвано %d подписчиков на *%s*",
		MsgNoOneToSummon: "Некого звать на *%s*",

		MsgGreeting:        "Привет! Создавайте активности, подписывайтесь и зовите своих.",
		MsgStatus:          "Логин: *%s*, готовность: %v",
		MsgSubscriptions:   "Подписки: %s",
		MsgNoSubscriptions: "Подписок пока нет",
		MsgActivityList:    "Известные активности: %s",
		MsgNoActivities:    "Активностей пока нет",

		MsgReady:           "Вы готовы к призыву",
		MsgDoNotDisturb:    "Вас не будут звать, пока вы не вернётесь",
		MsgCancelled:       "Отменено",
		MsgNothingToCancel: "Отменять нечего",
		MsgAskActivityName: "Пришлите имя активности",

		MsgPromoted:     "Пользователь *%s* повышен",
		MsgDemoted:      "Пользователь *%s* понижен",
		MsgUserNotFound: "Пользователь *%s* не найден.",

		MsgNotEnoughRights: "Недостаточно прав",
		MsgGenericFailure:  "Что-то пошло не так, попробуйте позже",

		MsgButtonJoin:    "Иду",
		MsgButtonLater:   "Скоро буду",
		MsgButtonDecline: "Отказаться",
	} {
		if err := message.SetString(language.Russian, key, text); err != nil {
			panic(err)
		}
	}
}
