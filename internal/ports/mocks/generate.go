//go:generate mockgen -source=../storage_api.go     -destination=./mock_storage_api.go     -package=mocks
//go:generate mockgen -source=../session_store.go   -destination=./mock_session_store.go   -package=mocks
//go:generate mockgen -source=../draft_validator.go -destination=./mock_draft_validator.go -package=mocks

package mocks
