// Package docs Clustering Microservice API.
//
// Микросервис кластеризации точек интереса (POI) для карты.
// Принимает viewport, zoom и фильтры, возвращает компактный набор
// кластеров маркеров: соседние POI группируются по ячейкам сетки,
// размер которых зависит от zoom.
//
// Основные возможности:
// - Кластеризация POI в видимой области карты с агрегатами (центроид, средний рейтинг, разбивка по категориям)
// - Кеширование результатов с коротким TTL
// - Дедупликация одинаковых конкурентных запросов (singleflight)
// - Фильтрация по категориям и минимальному рейтингу
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
