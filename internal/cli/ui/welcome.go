package ui

import (
	"fmt"
	"os"
)

// PrintWelcome выводит приветствие интерактивного режима
func PrintWelcome(version string) {
	logoBytes, err := os.ReadFile("logo.txt")
	if err == nil {
		fmt.Println(ColorCyan + string(logoBytes) + ColorReset)
	}
	fmt.Println(ColorBold + IconGlobe + " uiAutomation " + version + ColorReset)
	fmt.Println(ColorGray + "BDD сценарии ParaBank поверх Playwright" + ColorReset)
	fmt.Println()
	PrintHelp()
	fmt.Println(ColorCyan + IconBulb + " Совет:" + ColorReset + " " + ColorYellow + "run @smoke" + ColorReset + " запускает только сценарии с тегом smoke")
	fmt.Println()
}

// PrintHelp выводит список доступных команд
func PrintHelp() {
	fmt.Println(ColorYellow + IconList + " Доступные команды:" + ColorReset)
	fmt.Println("  " + ColorGreen + "run" + ColorReset + " [теги...]       - Запустить сценарии (\"!тег\" исключает)")
	fmt.Println("  " + ColorGreen + "history" + ColorReset + " [статус]    - Последние прогоны")
	fmt.Println("  " + ColorGreen + "show" + ColorReset + " <run-id>       - Шаги прогона")
	fmt.Println("  " + ColorGreen + "flaky" + ColorReset + "               - Нестабильные сценарии")
	fmt.Println("  " + ColorGreen + "steps" + ColorReset + "               - Зарегистрированные шаги")
	fmt.Println("  " + ColorGreen + "clear" + ColorReset + "               - Очистить экран")
	fmt.Println("  " + ColorGreen + "exit" + ColorReset + "                - Выход")
	fmt.Println()
}
