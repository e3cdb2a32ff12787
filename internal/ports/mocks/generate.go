//go:generate mockgen -source=../command_sender.go  -destination=./mock_command_sender.go  -package=mocks
//go:generate mockgen -source=../basket_service.go  -destination=./mock_basket_service.go  -package=mocks
//go:generate mockgen -source=../session_store.go   -destination=./mock_session_store.go   -package=mocks
//go:generate mockgen -source=../event_publisher.go -destination=./mock_event_publisher.go -package=mocks
//go:generate mockgen -source=../validator.go       -destination=./mock_validator.go       -package=mocks
//go:generate mockgen -source=../analytics.go       -destination=./mock_analytics.go       -package=mocks
//go:generate mockgen -source=../logger.go          -destination=./mock_logger.go          -package=mocks

package mocks
