package mock

//go:generate mockgen -source=../repository/contact_repository.go -destination=contact_repository_mock.go -package=mock
//go:generate mockgen -source=../repository/reply_repository.go -destination=reply_repository_mock.go -package=mock
//go:generate mockgen -source=../mail/mail.go -destination=mail_mock.go -package=mock -mock_names=Dispatcher=MockMailDispatcher
