package game

// Built-in decks. Prompt texts leave a blank the winning response fills in.

var basePrompts = Deck{
	{ID: "w1", Text: "En el asado familiar, el tío terminó ofreciendo: _______.", Type: CardTypePrompt},
	{ID: "w2", Text: "El verdadero motivo del taco en la Alameda: _______.", Type: CardTypePrompt},
	{ID: "w3", Text: "Mi jefe dijo que la empresa es una familia, y de regalo nos dio _______.", Type: CardTypePrompt},
	{ID: "w4", Text: "Lo único que sobrevivió al temblor fue _______.", Type: CardTypePrompt},
	{ID: "w5", Text: "El nuevo emprendimiento de la feria vende _______.", Type: CardTypePrompt},
	{ID: "w6", Text: "Según el horóscopo, esta semana me espera _______.", Type: CardTypePrompt},
	{ID: "w7", Text: "La micro llegó atrasada por culpa de _______.", Type: CardTypePrompt},
	{ID: "w8", Text: "En el matrimonio, el momento más incómodo fue _______.", Type: CardTypePrompt},
	{ID: "w9", Text: "El secreto para un completo perfecto es _______.", Type: CardTypePrompt},
	{ID: "w10", Text: "Mi abuela guarda en el mueble del living _______.", Type: CardTypePrompt},
	{ID: "w11", Text: "El plan perfecto para el 18 incluye _______.", Type: CardTypePrompt},
	{ID: "w12", Text: "Nadie esperaba que el gato del vecino trajera _______.", Type: CardTypePrompt},
	{ID: "w13", Text: "La reunión pudo haber sido un correo sobre _______.", Type: CardTypePrompt},
	{ID: "w14", Text: "En la playa este verano lo más vendido fue _______.", Type: CardTypePrompt},
}

var baseResponses = Deck{
	{ID: "b1", Text: "Un pebre con demasiado cilantro.", Type: CardTypeResponse},
	{ID: "b2", Text: "La cuenta del agua sin pagar.", Type: CardTypeResponse},
	{ID: "b3", Text: "Un perro random que se sumó al paseo.", Type: CardTypeResponse},
	{ID: "b4", Text: "El wifi del vecino.", Type: CardTypeResponse},
	{ID: "b5", Text: "Una palta madura en su punto exacto.", Type: CardTypeResponse},
	{ID: "b6", Text: "El grupo de WhatsApp de la familia.", Type: CardTypeResponse},
	{ID: "b7", Text: "Un terremoto 4.5 que nadie sintió.", Type: CardTypeResponse},
	{ID: "b8", Text: "La tía que pregunta cuándo te vas a casar.", Type: CardTypeResponse},
	{ID: "b9", Text: "Sopaipillas con mostaza.", Type: CardTypeResponse},
	{ID: "b10", Text: "El control remoto perdido hace tres años.", Type: CardTypeResponse},
	{ID: "b11", Text: "Una boleta a nombre de otra persona.", Type: CardTypeResponse},
	{ID: "b12", Text: "El comentario del arquero en el partido de los domingos.", Type: CardTypeResponse},
	{ID: "b13", Text: "Un pituto del primo del compadre.", Type: CardTypeResponse},
	{ID: "b14", Text: "La promo de dos por uno vencida.", Type: CardTypeResponse},
	{ID: "b15", Text: "Un asado vegano sorpresa.", Type: CardTypeResponse},
	{ID: "b16", Text: "El cargador que nadie devuelve.", Type: CardTypeResponse},
	{ID: "b17", Text: "Una rifa para el paseo de curso.", Type: CardTypeResponse},
	{ID: "b18", Text: "El playlist del copiloto mandón.", Type: CardTypeResponse},
	{ID: "b19", Text: "Un mote con huesillo tibio.", Type: CardTypeResponse},
	{ID: "b20", Text: "La señora que vende cuchuflís en la esquina.", Type: CardTypeResponse},
	{ID: "b21", Text: "El ministro explicando con un monito animado.", Type: CardTypeResponse},
	{ID: "b22", Text: "Una teleserie turca doblada al español.", Type: CardTypeResponse},
	{ID: "b23", Text: "El amigo que llega justo cuando está lista la comida.", Type: CardTypeResponse},
	{ID: "b24", Text: "Un paraguas dado vuelta por el viento.", Type: CardTypeResponse},
	{ID: "b25", Text: "La alarma del auto que suena a las 3 AM.", Type: CardTypeResponse},
	{ID: "b26", Text: "Un pan con mantequilla a medianoche.", Type: CardTypeResponse},
	{ID: "b27", Text: "El vuelto en monedas de diez pesos.", Type: CardTypeResponse},
	{ID: "b28", Text: "Una llamada de número desconocido a la hora de almuerzo.", Type: CardTypeResponse},
}

var aulaPrompts = Deck{
	{ID: "aw1", Text: "Para fomentar el pensamiento crítico, los estudiantes propusieron: _______.", Type: CardTypePrompt},
	{ID: "aw2", Text: "La planificación falló estrepitosamente cuando el profesor introdujo: _______.", Type: CardTypePrompt},
	{ID: "aw3", Text: "Habilidad del Siglo XXI más difícil de evaluar en un recreo: _______.", Type: CardTypePrompt},
	{ID: "aw4", Text: "El Decreto 67 dice explícitamente que no se puede reprobar por _______.", Type: CardTypePrompt},
	{ID: "aw5", Text: "La gamificación perfecta incluye 3 cosas: Puntos, Insignias y _______.", Type: CardTypePrompt},
	{ID: "aw6", Text: "En la reunión de apoderados, todos se pusieron de acuerdo en _______.", Type: CardTypePrompt},
	{ID: "aw7", Text: "Mi portafolio docente fue calificado como 'Destacado' gracias a _______.", Type: CardTypePrompt},
	{ID: "aw8", Text: "La IA en el aula reemplazará pronto a _______.", Type: CardTypePrompt},
	{ID: "aw9", Text: "El PIE de mi colegio funciona principalmente a base de _______.", Type: CardTypePrompt},
	{ID: "aw10", Text: "Aprendizaje Basado en Proyectos sobre: _______.", Type: CardTypePrompt},
}

var aulaResponses = Deck{
	{ID: "ab1", Text: "ChatGPT escribiendo el ensayo de lenguaje.", Type: CardTypeResponse},
	{ID: "ab2", Text: "Gamificación basada exclusivamente en memes de Condorito.", Type: CardTypeResponse},
	{ID: "ab3", Text: "Un debate socrático sobre por qué no hay confort en el baño.", Type: CardTypeResponse},
	{ID: "ab4", Text: "Colaboración radical entre el inspector y el centro de alumnos.", Type: CardTypeResponse},
	{ID: "ab5", Text: "Design Thinking aplicado a la fila del casino.", Type: CardTypeResponse},
	{ID: "ab6", Text: "Pensamiento computacional usando porotos.", Type: CardTypeResponse},
	{ID: "ab7", Text: "Alfabetización digital para la tía del aseo.", Type: CardTypeResponse},
	{ID: "ab8", Text: "Evaluación formativa mediante duelos de rimas.", Type: CardTypeResponse},
	{ID: "ab9", Text: "Aprendizaje socioemocional después de un 2.0 en matemáticas.", Type: CardTypeResponse},
	{ID: "ab10", Text: "Un TikTok educativo de 15 segundos sobre la célula.", Type: CardTypeResponse},
	{ID: "ab11", Text: "El currículum nacional convertido en un juego de rol.", Type: CardTypeResponse},
	{ID: "ab12", Text: "Resolución de conflictos mediante un 'Piedra, Papel o Tijera'.", Type: CardTypeResponse},
	{ID: "ab13", Text: "Flipped Classroom pero nadie vio el video.", Type: CardTypeResponse},
	{ID: "ab14", Text: "Metacognición sobre por qué me dio sueño en clase.", Type: CardTypeResponse},
	{ID: "ab15", Text: "Realidad Aumentada para ver los gérmenes del teclado.", Type: CardTypeResponse},
	{ID: "ab16", Text: "Liderazgo distribuido en el grupo de WhatsApp del curso.", Type: CardTypeResponse},
	{ID: "ab17", Text: "Inclusión educativa usando lenguaje de señas para pedir permiso.", Type: CardTypeResponse},
	{ID: "ab18", Text: "Ciudadanía digital responsable (no doxxear al profe).", Type: CardTypeResponse},
	{ID: "ab19", Text: "Mentalidad de crecimiento aplicada a la colación.", Type: CardTypeResponse},
	{ID: "ab20", Text: "Creatividad extrema para justificar la inasistencia.", Type: CardTypeResponse},
}
