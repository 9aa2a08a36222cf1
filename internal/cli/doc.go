// Package cli реализует инструмент командной строки Gauntlet.
//
// # Обзор
//
// CLI — клиентская утилита для взаимодействия с Gauntlet API.
// Работает через HTTP, не импортирует внутренние пакеты системы.
// CLI используется для управления игроками, матчами и просмотра
// таблицы лидеров.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для Gauntlet API. Инкапсулирует все HTTP-запросы,
// парсинг ответов (DataResponse, ListResponse, ErrorResponse)
// и обработку ошибок.
//
//	client := cli.NewClient("http://localhost:8080")
//	players, err := client.ListPlayers()
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: gauntlet leaderboard --json | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - player: list, register, show
//   - match: list, create, show
//   - leaderboard
//
// Каждая группа создаётся через фабричную функцию (NewPlayerCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
package cli
