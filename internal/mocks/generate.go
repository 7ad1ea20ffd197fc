package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SnapshotCache --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename snapshot_cache_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/tip --output domain/tip --outpkg tipmock --filename repository_mock.go
