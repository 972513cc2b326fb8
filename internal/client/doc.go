// Package client реализует сетевые стадии пайплайна: загрузку из source API
// и доставку в destination API.
//
// Обе стадии используют одну политику: ограниченное число попыток
// с exponential backoff (2^attempt от базовой задержки), per-request таймаут
// из endpoint descriptor'а и нормализацию ошибок в стадийно-специфичные
// sentinel-ошибки (ErrSourceFetch, ErrDelivery).
package client
