//go:generate mockgen -source=../ad_repository.go     -destination=./mock_ad_repository.go     -package=mocks
//go:generate mockgen -source=../ad_cache.go          -destination=./mock_ad_cache.go          -package=mocks
//go:generate mockgen -source=../validator.go         -destination=./mock_validator.go         -package=mocks
//go:generate mockgen -source=../ad_read_service.go   -destination=./mock_ad_read_service.go   -package=mocks
//go:generate mockgen -source=../record_handler.go    -destination=./mock_record_handler.go    -package=mocks
//go:generate mockgen -source=../health.go            -destination=./mock_health.go            -package=mocks

package mocks
